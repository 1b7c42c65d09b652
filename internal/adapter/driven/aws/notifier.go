package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Publish sends the message to an SNS topic and returns the message id. The
// client region is taken from the topic ARN.
func (r *AWSRepositoryImpl) Publish(ctx context.Context, topicARN, subject, message string) (string, error) {
	parsed, err := arn.Parse(topicARN)
	if err != nil {
		return "", fmt.Errorf("invalid SNS topic ARN %q: %w", topicARN, err)
	}
	if parsed.Service != "sns" {
		return "", fmt.Errorf("ARN %q is not an SNS topic", topicARN)
	}

	client, err := r.snsClient(ctx, parsed.Region)
	if err != nil {
		return "", err
	}

	output, err := client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", describeError("Publish", err)
	}
	return aws.ToString(output.MessageId), nil
}

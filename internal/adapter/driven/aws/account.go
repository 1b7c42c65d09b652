package aws

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// GetAccountID returns the account of the caller identity.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	client, err := r.stsClient(ctx, r.globalCallRegion())
	if err != nil {
		return "", err
	}

	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", describeError("GetCallerIdentity", err)
	}
	return aws.ToString(result.Account), nil
}

// GetAccessibleRegions lists the regions enabled for the account, sorted by name.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context) ([]string, error) {
	client, err := r.ec2Client(ctx, r.globalCallRegion())
	if err != nil {
		return nil, err
	}

	regionsOutput, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return nil, describeError("DescribeRegions", err)
	}

	regions := make([]string, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	sort.Strings(regions)
	return regions, nil
}

package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
)

// ListRunningInstances returns the ids of running EC2 instances in listing order.
func (r *AWSRepositoryImpl) ListRunningInstances(ctx context.Context, region string) ([]string, error) {
	client, err := r.ec2Client(ctx, region)
	if err != nil {
		return nil, err
	}

	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{
		Filters: []ec2Types.Filter{{Name: aws.String("instance-state-name"), Values: []string{"running"}}},
	})

	instanceIDs := []string{}
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describeError("DescribeInstances", err)
		}
		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				instanceIDs = append(instanceIDs, aws.ToString(instance.InstanceId))
			}
		}
	}
	return instanceIDs, nil
}

// ListAvailableVolumes returns the ids of EBS volumes not attached to any instance.
func (r *AWSRepositoryImpl) ListAvailableVolumes(ctx context.Context, region string) ([]string, error) {
	client, err := r.ec2Client(ctx, region)
	if err != nil {
		return nil, err
	}

	paginator := ec2.NewDescribeVolumesPaginator(client, &ec2.DescribeVolumesInput{
		Filters: []ec2Types.Filter{{Name: aws.String("status"), Values: []string{"available"}}},
	})

	volIDs := []string{}
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describeError("DescribeVolumes", err)
		}
		for _, vol := range output.Volumes {
			volIDs = append(volIDs, aws.ToString(vol.VolumeId))
		}
	}
	return volIDs, nil
}

// ListDBInstances returns every RDS DB instance identifier in the region.
func (r *AWSRepositoryImpl) ListDBInstances(ctx context.Context, region string) ([]string, error) {
	client, err := r.rdsClient(ctx, region)
	if err != nil {
		return nil, err
	}

	paginator := rds.NewDescribeDBInstancesPaginator(client, &rds.DescribeDBInstancesInput{})

	dbIDs := []string{}
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describeError("DescribeDBInstances", err)
		}
		for _, db := range output.DBInstances {
			dbIDs = append(dbIDs, aws.ToString(db.DBInstanceIdentifier))
		}
	}
	return dbIDs, nil
}

// ListBuckets returns every bucket of the account. The bucket region comes
// from the listing when S3 provides it and from GetBucketLocation otherwise;
// it is left empty when neither works.
func (r *AWSRepositoryImpl) ListBuckets(ctx context.Context) ([]entity.Bucket, error) {
	client, err := r.s3Client(ctx, r.globalCallRegion())
	if err != nil {
		return nil, err
	}

	paginator := s3.NewListBucketsPaginator(client, &s3.ListBucketsInput{})

	buckets := []entity.Bucket{}
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describeError("ListBuckets", err)
		}
		for _, b := range output.Buckets {
			bucket := entity.Bucket{
				Name:   aws.ToString(b.Name),
				Region: aws.ToString(b.BucketRegion),
			}
			if bucket.Region == "" {
				bucket.Region, bucket.LocationErr = r.bucketRegion(ctx, client, bucket.Name)
			}
			buckets = append(buckets, bucket)
		}
	}
	return buckets, nil
}

func (r *AWSRepositoryImpl) bucketRegion(ctx context.Context, client s3API, bucket string) (string, error) {
	location, err := client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(bucket)})
	if err != nil {
		return "", describeError(fmt.Sprintf("GetBucketLocation %s", bucket), err)
	}
	return normalizeLocation(string(location.LocationConstraint)), nil
}

// normalizeLocation maps legacy S3 location constraints to region names.
func normalizeLocation(constraint string) string {
	switch strings.TrimSpace(constraint) {
	case "":
		return "us-east-1"
	case "EU":
		return "eu-west-1"
	default:
		return constraint
	}
}

package aws

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const testRegion = "us-east-1"

func newTestRepository() *AWSRepositoryImpl {
	return NewAWSRepositoryFromConfig(aws.Config{Region: testRegion})
}

func (r *AWSRepositoryImpl) injectClient(region, service string, client interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientCache[clientKey(region, service)] = client
}

type fakeEC2 struct {
	instancePages [][]string
	volumes       []string
	regions       []string
	err           error

	mu      sync.Mutex
	filters map[string][]string
}

func (f *fakeEC2) recordFilters(name string, values []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.filters == nil {
		f.filters = map[string][]string{}
	}
	f.filters[name] = values
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, filter := range params.Filters {
		f.recordFilters(aws.ToString(filter.Name), filter.Values)
	}

	page := 0
	if params.NextToken != nil {
		page = int(aws.ToString(params.NextToken)[0] - '0')
	}

	output := &ec2.DescribeInstancesOutput{}
	if page < len(f.instancePages) {
		var instances []ec2Types.Instance
		for _, id := range f.instancePages[page] {
			instances = append(instances, ec2Types.Instance{InstanceId: aws.String(id)})
		}
		output.Reservations = []ec2Types.Reservation{{Instances: instances}}
	}
	if page+1 < len(f.instancePages) {
		output.NextToken = aws.String(string(rune('0' + page + 1)))
	}
	return output, nil
}

func (f *fakeEC2) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, filter := range params.Filters {
		f.recordFilters(aws.ToString(filter.Name), filter.Values)
	}
	output := &ec2.DescribeVolumesOutput{}
	for _, id := range f.volumes {
		output.Volumes = append(output.Volumes, ec2Types.Volume{VolumeId: aws.String(id)})
	}
	return output, nil
}

func (f *fakeEC2) DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	output := &ec2.DescribeRegionsOutput{}
	for _, name := range f.regions {
		output.Regions = append(output.Regions, ec2Types.Region{RegionName: aws.String(name)})
	}
	return output, nil
}

type fakeRDS struct {
	pages [][]string
}

func (f *fakeRDS) DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	page := 0
	if params.Marker != nil {
		page = int(aws.ToString(params.Marker)[0] - '0')
	}
	output := &rds.DescribeDBInstancesOutput{}
	if page < len(f.pages) {
		for _, id := range f.pages[page] {
			output.DBInstances = append(output.DBInstances, rdsTypes.DBInstance{DBInstanceIdentifier: aws.String(id)})
		}
	}
	if page+1 < len(f.pages) {
		output.Marker = aws.String(string(rune('0' + page + 1)))
	}
	return output, nil
}

type fakeS3 struct {
	buckets   []s3Types.Bucket
	locations map[string]string
	locErr    map[string]error
}

func (f *fakeS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return &s3.ListBucketsOutput{Buckets: f.buckets}, nil
}

func (f *fakeS3) GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	name := aws.ToString(params.Bucket)
	if err := f.locErr[name]; err != nil {
		return nil, err
	}
	return &s3.GetBucketLocationOutput{LocationConstraint: s3Types.BucketLocationConstraint(f.locations[name])}, nil
}

type fakeCloudWatch struct {
	output *cloudwatch.GetMetricStatisticsOutput
	err    error

	mu    sync.Mutex
	input *cloudwatch.GetMetricStatisticsInput
}

func (f *fakeCloudWatch) GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.mu.Lock()
	f.input = params
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSTS struct {
	account string
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

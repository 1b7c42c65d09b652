package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// Narrow views of the SDK clients used by this package.
type (
	ec2API interface {
		DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
		DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
		DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	}
	rdsAPI interface {
		DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
	}
	s3API interface {
		ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
		GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	}
	cloudWatchAPI interface {
		GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
	}
	snsAPI interface {
		Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	}
	stsAPI interface {
		GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
	}
)

const (
	serviceEC2        = "ec2"
	serviceRDS        = "rds"
	serviceS3         = "s3"
	serviceCloudWatch = "cloudwatch"
	serviceSNS        = "sns"
	serviceSTS        = "sts"

	// globalRegion is used for account-wide calls when no default region is configured.
	globalRegion = "us-east-1"
)

// AWSRepositoryImpl implements the inventory, metric, notification and
// account ports on top of the AWS SDK, caching one client per region and service.
type AWSRepositoryImpl struct {
	profile     string
	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository creates a repository that lazily loads the shared config
// for the given profile. An empty profile uses the default credential chain.
func NewAWSRepository(profile string) *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		profile:     profile,
		clientCache: make(map[string]interface{}),
	}
}

// NewAWSRepositoryFromConfig creates a repository around an already loaded config.
func NewAWSRepositoryFromConfig(cfg aws.Config) *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		cfg:         &cfg,
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.cfg = &cfg
	return cfg, nil
}

// DefaultRegion returns the region of the loaded SDK config.
func (r *AWSRepositoryImpl) DefaultRegion() string {
	cfg, err := r.getAWSConfig(context.Background())
	if err != nil {
		return ""
	}
	return cfg.Region
}

func clientKey(region, service string) string {
	return fmt.Sprintf("%s-%s", region, service)
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, region, service string) (interface{}, error) {
	cacheKey := clientKey(region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case serviceEC2:
		client = ec2.NewFromConfig(regionalCfg)
	case serviceRDS:
		client = rds.NewFromConfig(regionalCfg)
	case serviceS3:
		client = s3.NewFromConfig(regionalCfg)
	case serviceCloudWatch:
		client = cloudwatch.NewFromConfig(regionalCfg)
	case serviceSNS:
		client = sns.NewFromConfig(regionalCfg)
	case serviceSTS:
		client = sts.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

func (r *AWSRepositoryImpl) ec2Client(ctx context.Context, region string) (ec2API, error) {
	client, err := r.getServiceClient(ctx, region, serviceEC2)
	if err != nil {
		return nil, err
	}
	return clientAs[ec2API](client, serviceEC2)
}

func (r *AWSRepositoryImpl) rdsClient(ctx context.Context, region string) (rdsAPI, error) {
	client, err := r.getServiceClient(ctx, region, serviceRDS)
	if err != nil {
		return nil, err
	}
	return clientAs[rdsAPI](client, serviceRDS)
}

func (r *AWSRepositoryImpl) s3Client(ctx context.Context, region string) (s3API, error) {
	client, err := r.getServiceClient(ctx, region, serviceS3)
	if err != nil {
		return nil, err
	}
	return clientAs[s3API](client, serviceS3)
}

func (r *AWSRepositoryImpl) cloudWatchClient(ctx context.Context, region string) (cloudWatchAPI, error) {
	client, err := r.getServiceClient(ctx, region, serviceCloudWatch)
	if err != nil {
		return nil, err
	}
	return clientAs[cloudWatchAPI](client, serviceCloudWatch)
}

func (r *AWSRepositoryImpl) snsClient(ctx context.Context, region string) (snsAPI, error) {
	client, err := r.getServiceClient(ctx, region, serviceSNS)
	if err != nil {
		return nil, err
	}
	return clientAs[snsAPI](client, serviceSNS)
}

func (r *AWSRepositoryImpl) stsClient(ctx context.Context, region string) (stsAPI, error) {
	client, err := r.getServiceClient(ctx, region, serviceSTS)
	if err != nil {
		return nil, err
	}
	return clientAs[stsAPI](client, serviceSTS)
}

func clientAs[T any](client interface{}, service string) (T, error) {
	typed, ok := client.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected client type %T for service %s", client, service)
	}
	return typed, nil
}

// globalCallRegion is the region used for calls that are not region scoped.
func (r *AWSRepositoryImpl) globalCallRegion() string {
	if region := r.DefaultRegion(); region != "" {
		return region
	}
	return globalRegion
}

// describeError prefixes err with the API error code when the SDK reports one.
func describeError(operation string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s (%s): %w", operation, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}

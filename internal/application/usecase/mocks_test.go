package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

const (
	testRegion   = "us-east-1"
	testTopicARN = "arn:aws:sns:us-east-1:123456789012:idle-resources"
	testAccount  = "123456789012"
)

// mockCloud implements every cloud-facing port.
type mockCloud struct {
	mock.Mock
}

func (m *mockCloud) ListRunningInstances(ctx context.Context, region string) ([]string, error) {
	args := m.Called(ctx, region)
	return stringsArg(args, 0), args.Error(1)
}

func (m *mockCloud) ListAvailableVolumes(ctx context.Context, region string) ([]string, error) {
	args := m.Called(ctx, region)
	return stringsArg(args, 0), args.Error(1)
}

func (m *mockCloud) ListDBInstances(ctx context.Context, region string) ([]string, error) {
	args := m.Called(ctx, region)
	return stringsArg(args, 0), args.Error(1)
}

func (m *mockCloud) ListBuckets(ctx context.Context) ([]entity.Bucket, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]entity.Bucket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCloud) QueryMetric(ctx context.Context, region string, window entity.MetricWindow) (entity.MetricSample, error) {
	args := m.Called(ctx, region, window)
	return args.Get(0).(entity.MetricSample), args.Error(1)
}

func (m *mockCloud) Publish(ctx context.Context, destination, subject, message string) (string, error) {
	args := m.Called(ctx, destination, subject, message)
	return args.String(0), args.Error(1)
}

func (m *mockCloud) GetAccountID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockCloud) DefaultRegion() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockCloud) GetAccessibleRegions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return stringsArg(args, 0), args.Error(1)
}

func stringsArg(args mock.Arguments, i int) []string {
	if v := args.Get(i); v != nil {
		return v.([]string)
	}
	return nil
}

// onMetric matches a metric query by the value of one dimension.
func (m *mockCloud) onMetric(dimension, value string) *mock.Call {
	return m.On("QueryMetric", mock.Anything, mock.Anything, mock.MatchedBy(func(w entity.MetricWindow) bool {
		return w.DimensionValue(dimension) == value
	}))
}

// emptyInventory registers empty listings for the kinds a test does not care about.
func (m *mockCloud) emptyInventory() {
	m.On("ListRunningInstances", mock.Anything, mock.Anything).Return([]string{}, nil).Maybe()
	m.On("ListAvailableVolumes", mock.Anything, mock.Anything).Return([]string{}, nil).Maybe()
	m.On("ListDBInstances", mock.Anything, mock.Anything).Return([]string{}, nil).Maybe()
	m.On("ListBuckets", mock.Anything).Return([]entity.Bucket{}, nil).Maybe()
	m.On("GetAccountID", mock.Anything).Return(testAccount, nil).Maybe()
}

// recordingLogger keeps every line for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, a...))
}

func (l *recordingLogger) LogInfo(format string, a ...interface{})    { l.record("INFO", format, a...) }
func (l *recordingLogger) LogWarning(format string, a ...interface{}) { l.record("WARN", format, a...) }
func (l *recordingLogger) LogError(format string, a ...interface{})   { l.record("ERROR", format, a...) }
func (l *recordingLogger) LogSuccess(format string, a ...interface{}) { l.record("OK", format, a...) }

func (l *recordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

var _ types.Logger = (*recordingLogger)(nil)

func testConfig() types.Config {
	return types.Config{
		TopicARN: testTopicARN,
		Regions:  []string{testRegion},
	}
}

func newTestUseCase(cloud *mockCloud, logger types.Logger, cfg types.Config) *IdleResourceUseCase {
	return NewIdleResourceUseCase(cloud, cloud, cloud, cloud, logger, cfg)
}

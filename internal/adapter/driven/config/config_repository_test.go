package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/aws-idle-notifier/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "idle.toml",
			content: `topic_arn = "arn:aws:sns:us-east-1:123456789012:idle"
cpu_threshold = 5.0
lookback_days = 14
regions = ["us-east-1", "eu-west-1"]
`,
		},
		{
			name: "yaml",
			file: "idle.yml",
			content: `topic_arn: arn:aws:sns:us-east-1:123456789012:idle
cpu_threshold: 5
lookback_days: 14
regions:
  - us-east-1
  - eu-west-1
`,
		},
		{
			name:    "json",
			file:    "idle.json",
			content: `{"topic_arn":"arn:aws:sns:us-east-1:123456789012:idle","cpu_threshold":5,"lookback_days":14,"regions":["us-east-1","eu-west-1"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewConfigRepository()

			cfg, err := repo.LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:idle", cfg.TopicARN)
			assert.Equal(t, 5.0, cfg.CPUThreshold)
			assert.Equal(t, 14, cfg.LookbackDays)
			assert.Equal(t, []string{"us-east-1", "eu-west-1"}, cfg.Regions)

			assert.Equal(t, types.DefaultSubject, cfg.Subject)
			assert.Equal(t, types.DefaultPeriodSeconds, cfg.PeriodSeconds)
			assert.Equal(t, types.DefaultIOPSThreshold, cfg.IOPSThreshold)
			assert.Equal(t, types.DefaultMaxConcurrentQueries, cfg.MaxConcurrentQueries)
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "idle.ini", "topic_arn=x"))
	assert.ErrorContains(t, err, "unsupported config file format: .ini")

	_, err = repo.LoadConfigFile(writeFile(t, "idle.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("IDLE_TOPIC_ARN", "arn:aws:sns:eu-west-1:123456789012:idle")
	t.Setenv("IDLE_CPU_THRESHOLD", "7.5")
	t.Setenv("IDLE_LOOKBACK_DAYS", "14")
	t.Setenv("IDLE_REGIONS", "eu-west-1, us-east-1")
	t.Setenv("IDLE_DRY_RUN", "true")

	cfg, err := NewConfigRepository().LoadFromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:idle", cfg.TopicARN)
	assert.Equal(t, 7.5, cfg.CPUThreshold)
	assert.Equal(t, 14, cfg.LookbackDays)
	assert.Equal(t, []string{"eu-west-1", "us-east-1"}, cfg.Regions)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, types.DefaultSubject, cfg.Subject)
	assert.Equal(t, types.DefaultPeriodSeconds, cfg.PeriodSeconds)
}

func TestLoadFromEnvironment_LegacyTopic(t *testing.T) {
	t.Setenv("IDLE_TOPIC_ARN", "")
	t.Setenv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:123456789012:legacy")

	cfg, err := NewConfigRepository().LoadFromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:legacy", cfg.TopicARN)
	assert.Equal(t, types.DefaultCPUThreshold, cfg.CPUThreshold)
	assert.Equal(t, types.DefaultLookbackDays, cfg.LookbackDays)
	assert.Nil(t, cfg.Regions)
}

func TestLoadFromEnvironment_MissingTopic(t *testing.T) {
	t.Setenv("IDLE_TOPIC_ARN", "")
	t.Setenv("SNS_TOPIC_ARN", "")
	t.Setenv("IDLE_DRY_RUN", "false")

	_, err := NewConfigRepository().LoadFromEnvironment()
	assert.ErrorIs(t, err, types.ErrMissingTopicARN)
}

func TestLoadFromEnvironment_PeriodMustDivideLookback(t *testing.T) {
	t.Setenv("IDLE_TOPIC_ARN", "arn:aws:sns:eu-west-1:123456789012:idle")
	t.Setenv("IDLE_PERIOD_SECONDS", "604800")

	_, err := NewConfigRepository().LoadFromEnvironment()
	assert.ErrorContains(t, err, "invalid environment configuration")
	assert.ErrorContains(t, err, "does not evenly divide")

	t.Setenv("IDLE_LOOKBACK_DAYS", "28")
	cfg, err := NewConfigRepository().LoadFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, 604800, cfg.PeriodSeconds)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a,b c,,"))
}

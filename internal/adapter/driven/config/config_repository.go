package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-idle-notifier/internal/domain/repository"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment key, e.g. IDLE_TOPIC_ARN.
const EnvPrefix = "IDLE"

// legacyTopicEnv is the topic variable accepted for older deployments.
const legacyTopicEnv = "SNS_TOPIC_ARN"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	lookupEnv func(string) (string, bool)
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{lookupEnv: os.LookupEnv}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Campos ausentes recebem os valores padrão.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	config = config.WithDefaults()
	return &config, nil
}

// LoadFromEnvironment monta a configuração a partir de variáveis IDLE_*.
// SNS_TOPIC_ARN é aceito quando IDLE_TOPIC_ARN não está definido.
func (r *ConfigRepositoryImpl) LoadFromEnvironment() (*types.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	defaults := types.DefaultConfig()
	v.SetDefault("topic_arn", "")
	v.SetDefault("subject", defaults.Subject)
	v.SetDefault("cpu_threshold", defaults.CPUThreshold)
	v.SetDefault("iops_threshold", defaults.IOPSThreshold)
	v.SetDefault("lookback_days", defaults.LookbackDays)
	v.SetDefault("period_seconds", defaults.PeriodSeconds)
	v.SetDefault("regions", "")
	v.SetDefault("profile", "")
	v.SetDefault("max_concurrent_queries", defaults.MaxConcurrentQueries)
	v.SetDefault("dry_run", false)

	config := types.Config{
		TopicARN:             v.GetString("topic_arn"),
		Subject:              v.GetString("subject"),
		CPUThreshold:         v.GetFloat64("cpu_threshold"),
		IOPSThreshold:        v.GetFloat64("iops_threshold"),
		LookbackDays:         v.GetInt("lookback_days"),
		PeriodSeconds:        v.GetInt("period_seconds"),
		Regions:              splitList(v.GetString("regions")),
		Profile:              v.GetString("profile"),
		MaxConcurrentQueries: v.GetInt("max_concurrent_queries"),
		DryRun:               v.GetBool("dry_run"),
	}

	if config.TopicARN == "" {
		if legacy, ok := r.lookupEnv(legacyTopicEnv); ok {
			config.TopicARN = strings.TrimSpace(legacy)
		}
	}

	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return &config, nil
}

// splitList accepts comma or whitespace separated values.
func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

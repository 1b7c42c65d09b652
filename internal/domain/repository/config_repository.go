package repository

import (
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadFromEnvironment() (*types.Config, error)
}

package repository

import (
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	// ApplyEnv sobrepõe valores do ambiente (e de um arquivo .env opcional) sobre cfg.
	ApplyEnv(cfg *types.Config, envFile string) error
}

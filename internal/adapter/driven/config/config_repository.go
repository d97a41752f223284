package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// EnvPrefix é o prefixo das variáveis de ambiente reconhecidas.
const EnvPrefix = "COST_REPORT"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: error accessing config file: %w", types.ErrConfiguration, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, not a file", types.ErrConfiguration, filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading config file: %w", types.ErrConfiguration, err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("%w: error parsing TOML file: %w", types.ErrConfiguration, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("%w: error parsing YAML file: %w", types.ErrConfiguration, err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("%w: error parsing JSON file: %w", types.ErrConfiguration, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", types.ErrConfiguration, fileExtension)
	}

	return &config, nil
}

// envBinding liga uma chave de configuração às variáveis de ambiente aceitas.
type envBinding struct {
	key    string
	legacy []string
	set    func(cfg *types.Config, value string) error
}

func stringField(ptr func(*types.Config) *string) func(*types.Config, string) error {
	return func(cfg *types.Config, value string) error {
		*ptr(cfg) = value
		return nil
	}
}

func intField(key string, ptr func(*types.Config) *int) func(*types.Config, string) error {
	return func(cfg *types.Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", types.ErrConfiguration, key, value)
		}
		*ptr(cfg) = n
		return nil
	}
}

func optionalIntField(key string, ptr func(*types.Config) **int) func(*types.Config, string) error {
	return intField(key, func(cfg *types.Config) *int {
		field := ptr(cfg)
		if *field == nil {
			*field = new(int)
		}
		return *field
	})
}

var envBindings = []envBinding{
	{key: "tenants_role_arn", legacy: []string{"TENANTS_ROLE_ARN"}, set: stringField(func(c *types.Config) *string { return &c.TenantsRoleARN })},
	{key: "role_session_name", set: stringField(func(c *types.Config) *string { return &c.RoleSessionName })},
	{key: "profile", legacy: []string{"AWS_PROFILE"}, set: stringField(func(c *types.Config) *string { return &c.Profile })},
	{key: "region", set: stringField(func(c *types.Config) *string { return &c.Region })},
	{key: "webhook_url", legacy: []string{"SLACK_WEBHOOK_URL"}, set: stringField(func(c *types.Config) *string { return &c.WebhookURL })},
	{key: "webhook_secret_id", set: stringField(func(c *types.Config) *string { return &c.WebhookSecretID })},
	{key: "months_back", set: optionalIntField("months_back", func(c *types.Config) **int { return &c.MonthsBack })},
	{key: "weeks_back", set: optionalIntField("weeks_back", func(c *types.Config) **int { return &c.WeeksBack })},
	{key: "week_start", set: stringField(func(c *types.Config) *string { return &c.WeekStart })},
	{key: "missing_period_policy", set: func(c *types.Config, v string) error {
		c.MissingPeriodPolicy = types.MissingPeriodPolicy(v)
		return nil
	}},
	{key: "aws_timeout_seconds", set: intField("aws_timeout_seconds", func(c *types.Config) *int { return &c.AWSTimeoutSeconds })},
	{key: "delivery_timeout_seconds", set: intField("delivery_timeout_seconds", func(c *types.Config) *int { return &c.DeliveryTimeoutSeconds })},
	{key: "template_file", set: stringField(func(c *types.Config) *string { return &c.TemplateFile })},
	{key: "schedule", set: stringField(func(c *types.Config) *string { return &c.Schedule })},
	{key: "timezone", set: stringField(func(c *types.Config) *string { return &c.Timezone })},
	{key: "metrics.listen_addr", set: stringField(func(c *types.Config) *string { return &c.Metrics.ListenAddr })},
	{key: "metrics.pushgateway_url", set: stringField(func(c *types.Config) *string { return &c.Metrics.PushgatewayURL })},
	{key: "metrics.job_name", set: stringField(func(c *types.Config) *string { return &c.Metrics.JobName })},
}

// ApplyEnv sobrepõe em cfg as variáveis COST_REPORT_* (e as legadas, como
// SLACK_WEBHOOK_URL). Um envFile explícito precisa existir; sem ele, um .env
// no diretório atual é carregado se houver.
func (r *ConfigRepositoryImpl) ApplyEnv(cfg *types.Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("%w: error loading env file %s: %w", types.ErrConfiguration, envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range envBindings {
		names := append([]string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(b.key, ".", "_"))}, b.legacy...)
		if err := v.BindEnv(append([]string{b.key}, names...)...); err != nil {
			return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		if !v.IsSet(b.key) {
			continue
		}
		if err := b.set(cfg, v.GetString(b.key)); err != nil {
			return err
		}
	}

	return nil
}

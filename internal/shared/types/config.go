package types

import (
	"fmt"
	"strings"
	"time"
)

// Valores padrão aplicados por Validate quando o campo vem vazio.
const (
	DefaultRoleSessionName     = "GetProjectBlueCosts"
	DefaultRegion              = "us-east-1"
	DefaultMonthsBack          = 4
	DefaultWeeksBack           = 5
	DefaultWeekStart           = "monday"
	DefaultAWSTimeoutSeconds   = 30
	DefaultDeliveryTimeoutSecs = 10
	DefaultSchedule            = "0 13 * * MON"
	DefaultTimezone            = "UTC"
	DefaultMetricsJobName      = "aws_finops_report"
)

// MissingPeriodPolicy decide o que acontece quando uma conta não tem valor para um período
// presente na outra.
type MissingPeriodPolicy string

const (
	// MissingPeriodError falha o relatório com IncompleteCoverageError.
	MissingPeriodError MissingPeriodPolicy = "error"
	// MissingPeriodZero trata a célula ausente explicitamente como $0.
	MissingPeriodZero MissingPeriodPolicy = "zero"
)

// MetricsConfig controls how run metrics are exposed.
type MetricsConfig struct {
	ListenAddr     string `json:"listen_addr" yaml:"listen_addr" toml:"listen_addr"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url" toml:"pushgateway_url"`
	JobName        string `json:"job_name" yaml:"job_name" toml:"job_name"`
}

// Config represents the application configuration that can be loaded from a file
// and overridden by environment variables.
type Config struct {
	TenantsRoleARN         string              `json:"tenants_role_arn" yaml:"tenants_role_arn" toml:"tenants_role_arn"`
	RoleSessionName        string              `json:"role_session_name" yaml:"role_session_name" toml:"role_session_name"`
	Profile                string              `json:"profile" yaml:"profile" toml:"profile"`
	Region                 string              `json:"region" yaml:"region" toml:"region"`
	WebhookURL             string              `json:"webhook_url" yaml:"webhook_url" toml:"webhook_url"`
	WebhookSecretID        string              `json:"webhook_secret_id" yaml:"webhook_secret_id" toml:"webhook_secret_id"`
	MonthsBack             *int                `json:"months_back" yaml:"months_back" toml:"months_back"`
	WeeksBack              *int                `json:"weeks_back" yaml:"weeks_back" toml:"weeks_back"`
	WeekStart              string              `json:"week_start" yaml:"week_start" toml:"week_start"`
	MissingPeriodPolicy    MissingPeriodPolicy `json:"missing_period_policy" yaml:"missing_period_policy" toml:"missing_period_policy"`
	AWSTimeoutSeconds      int                 `json:"aws_timeout_seconds" yaml:"aws_timeout_seconds" toml:"aws_timeout_seconds"`
	DeliveryTimeoutSeconds int                 `json:"delivery_timeout_seconds" yaml:"delivery_timeout_seconds" toml:"delivery_timeout_seconds"`
	TemplateFile           string              `json:"template_file" yaml:"template_file" toml:"template_file"`
	Schedule               string              `json:"schedule" yaml:"schedule" toml:"schedule"`
	Timezone               string              `json:"timezone" yaml:"timezone" toml:"timezone"`
	Metrics                MetricsConfig       `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// Validate preenche os valores padrão e rejeita configurações inválidas.
// Todos os erros retornados casam com ErrConfiguration.
func (c *Config) Validate() error {
	c.TenantsRoleARN = strings.TrimSpace(c.TenantsRoleARN)
	if c.TenantsRoleARN == "" {
		return fmt.Errorf("%w: tenants_role_arn must be provided", ErrConfiguration)
	}
	if c.RoleSessionName == "" {
		c.RoleSessionName = DefaultRoleSessionName
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}

	// 0 é um valor válido (só o período corrente); apenas a ausência recebe o padrão.
	if c.MonthsBack == nil {
		c.MonthsBack = IntPtr(DefaultMonthsBack)
	}
	if *c.MonthsBack < 0 {
		return fmt.Errorf("%w: months_back must be >= 0", ErrConfiguration)
	}
	if c.WeeksBack == nil {
		c.WeeksBack = IntPtr(DefaultWeeksBack)
	}
	if *c.WeeksBack < 0 {
		return fmt.Errorf("%w: weeks_back must be >= 0", ErrConfiguration)
	}

	if c.WeekStart == "" {
		c.WeekStart = DefaultWeekStart
	}
	if _, err := ParseWeekday(c.WeekStart); err != nil {
		return err
	}

	switch MissingPeriodPolicy(strings.ToLower(string(c.MissingPeriodPolicy))) {
	case "":
		c.MissingPeriodPolicy = MissingPeriodError
	case MissingPeriodError, MissingPeriodZero:
		c.MissingPeriodPolicy = MissingPeriodPolicy(strings.ToLower(string(c.MissingPeriodPolicy)))
	default:
		return fmt.Errorf("%w: missing_period_policy must be %q or %q, got %q",
			ErrConfiguration, MissingPeriodError, MissingPeriodZero, c.MissingPeriodPolicy)
	}

	if c.AWSTimeoutSeconds <= 0 {
		c.AWSTimeoutSeconds = DefaultAWSTimeoutSeconds
	}
	if c.DeliveryTimeoutSeconds <= 0 {
		c.DeliveryTimeoutSeconds = DefaultDeliveryTimeoutSecs
	}
	if c.Schedule == "" {
		c.Schedule = DefaultSchedule
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: invalid timezone: %v", ErrConfiguration, err)
	}
	if c.Metrics.JobName == "" {
		c.Metrics.JobName = DefaultMetricsJobName
	}

	return nil
}

// LookbackMonths is the number of whole months before the current one in the monthly window.
func (c *Config) LookbackMonths() int {
	if c.MonthsBack == nil {
		return DefaultMonthsBack
	}
	return *c.MonthsBack
}

// LookbackWeeks is the number of weeks before today in the weekly window.
func (c *Config) LookbackWeeks() int {
	if c.WeeksBack == nil {
		return DefaultWeeksBack
	}
	return *c.WeeksBack
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AWSTimeout is the bound applied to each STS, Cost Explorer and Secrets Manager call.
func (c *Config) AWSTimeout() time.Duration {
	return time.Duration(c.AWSTimeoutSeconds) * time.Second
}

// DeliveryTimeout is the bound applied to webhook delivery.
func (c *Config) DeliveryTimeout() time.Duration {
	return time.Duration(c.DeliveryTimeoutSeconds) * time.Second
}

// ParseWeekday converte nomes como "monday" ou "Sun" em time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if key == full || key == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: invalid week_start %q", ErrConfiguration, name)
}

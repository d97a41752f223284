package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := &Config{TenantsRoleARN: " arn:aws:iam::222222222222:role/costs "}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "arn:aws:iam::222222222222:role/costs", cfg.TenantsRoleARN)
	assert.Equal(t, DefaultRoleSessionName, cfg.RoleSessionName)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, 4, cfg.LookbackMonths())
	assert.Equal(t, 5, cfg.LookbackWeeks())
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, MissingPeriodError, cfg.MissingPeriodPolicy)
	assert.Equal(t, 30*time.Second, cfg.AWSTimeout())
	assert.Equal(t, 10*time.Second, cfg.DeliveryTimeout())
	assert.Equal(t, DefaultSchedule, cfg.Schedule)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, DefaultMetricsJobName, cfg.Metrics.JobName)
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing role", cfg: Config{}},
		{name: "negative months", cfg: Config{TenantsRoleARN: "arn", MonthsBack: IntPtr(-1)}},
		{name: "negative weeks", cfg: Config{TenantsRoleARN: "arn", WeeksBack: IntPtr(-2)}},
		{name: "bad week start", cfg: Config{TenantsRoleARN: "arn", WeekStart: "funday"}},
		{name: "bad policy", cfg: Config{TenantsRoleARN: "arn", MissingPeriodPolicy: "guess"}},
		{name: "bad timezone", cfg: Config{TenantsRoleARN: "arn", Timezone: "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestConfigValidateKeepsExplicitZeroLookback(t *testing.T) {
	cfg := &Config{TenantsRoleARN: "arn", MonthsBack: IntPtr(0), WeeksBack: IntPtr(0)}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.LookbackMonths())
	assert.Equal(t, 0, cfg.LookbackWeeks())

	cfg = &Config{TenantsRoleARN: "arn", WeeksBack: IntPtr(0)}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMonthsBack, cfg.LookbackMonths())
	assert.Equal(t, 0, cfg.LookbackWeeks())
}

func TestConfigValidateNormalizesPolicy(t *testing.T) {
	cfg := &Config{TenantsRoleARN: "arn", MissingPeriodPolicy: "ZERO"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MissingPeriodZero, cfg.MissingPeriodPolicy)
}

func TestParseWeekday(t *testing.T) {
	for name, want := range map[string]time.Weekday{
		"monday": time.Monday,
		"Sun":    time.Sunday,
		" SAT ":  time.Saturday,
	} {
		got, err := ParseWeekday(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseWeekday("mo")
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("strconv: bad")
	mre := &MalformedRecordError{Account: "Central", Index: 2, Field: "amortized amount", Value: "x", Err: cause}
	assert.True(t, errors.Is(mre, ErrMalformedRecord))
	assert.True(t, errors.Is(mre, cause))
	assert.Contains(t, mre.Error(), "Central record 2")

	ice := &IncompleteCoverageError{Period: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), MissingAccount: "Tenants", Granularity: "MONTHLY"}
	assert.True(t, errors.Is(ice, ErrIncompleteCoverage))
	assert.False(t, errors.Is(ice, ErrMalformedRecord))
	assert.Contains(t, ice.Error(), "2024-02-01")
}

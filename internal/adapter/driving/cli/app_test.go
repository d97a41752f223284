package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

type stubConfigRepo struct {
	cfg    types.Config
	loaded string
	envErr error
}

func (s *stubConfigRepo) LoadConfigFile(path string) (*types.Config, error) {
	s.loaded = path
	cfg := s.cfg
	return &cfg, nil
}

func (s *stubConfigRepo) ApplyEnv(*types.Config, string) error { return s.envErr }

type stubRunner struct {
	args   *types.CLIArgs
	result entity.Result
	err    error
}

func (r *stubRunner) Run(_ context.Context, args *types.CLIArgs) (entity.Result, error) {
	r.args = args
	return r.result, r.err
}

func newTestApp(repo *stubConfigRepo, runner *stubRunner, built **types.Config) (*CLIApp, *bytes.Buffer) {
	app := NewCLIApp("0.0.0-dev", repo, func(cfg *types.Config, _ *types.CLIArgs, _ io.Writer) (Runner, http.Handler, error) {
		if built != nil {
			*built = cfg
		}
		return runner, nil, nil
	})
	out := &bytes.Buffer{}
	app.rootCmd.SetOut(out)
	app.rootCmd.SetErr(out)
	return app, out
}

func validRepo() *stubConfigRepo {
	return &stubConfigRepo{cfg: types.Config{TenantsRoleARN: "arn:aws:iam::222222222222:role/costs"}}
}

func TestRunCommandTextOutput(t *testing.T) {
	repo := validRepo()
	runner := &stubRunner{result: entity.Result{StatusCode: 200, Body: "report text"}}
	var cfg *types.Config
	app, out := newTestApp(repo, runner, &cfg)

	app.rootCmd.SetArgs([]string{"run", "--config-file", "costs.toml", "--output", "text", "--dry-run", "--report-type", "csv,pdf"})
	require.NoError(t, app.Execute())

	assert.Equal(t, "report text", out.String())
	assert.Equal(t, "costs.toml", repo.loaded)
	require.NotNil(t, runner.args)
	assert.True(t, runner.args.DryRun)
	assert.Equal(t, []string{"csv", "pdf"}, runner.args.ReportType)
	assert.NotEmpty(t, runner.args.Dir)

	require.NotNil(t, cfg)
	assert.Equal(t, types.DefaultMonthsBack, cfg.LookbackMonths())
	assert.Equal(t, types.MissingPeriodError, cfg.MissingPeriodPolicy)
}

func TestRunCommandJSONOutput(t *testing.T) {
	runner := &stubRunner{result: entity.Result{StatusCode: 200, Body: "report text"}}
	app, out := newTestApp(validRepo(), runner, nil)

	app.rootCmd.SetArgs([]string{"run", "-C", "costs.yaml", "-o", "json"})
	require.NoError(t, app.Execute())

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 200.0, got["statusCode"])
	assert.Equal(t, "report text", got["body"])
}

func TestRunCommandErrors(t *testing.T) {
	t.Run("missing role", func(t *testing.T) {
		app, _ := newTestApp(&stubConfigRepo{}, &stubRunner{}, nil)
		app.rootCmd.SetArgs([]string{"run", "-q"})
		assert.True(t, errors.Is(app.Execute(), types.ErrConfiguration))
	})

	t.Run("bad output", func(t *testing.T) {
		app, _ := newTestApp(validRepo(), &stubRunner{}, nil)
		app.rootCmd.SetArgs([]string{"run", "-C", "c.toml", "-o", "xml"})
		assert.True(t, errors.Is(app.Execute(), types.ErrConfiguration))
	})

	t.Run("runner failure", func(t *testing.T) {
		runner := &stubRunner{err: types.ErrDelivery}
		app, out := newTestApp(validRepo(), runner, nil)
		app.rootCmd.SetArgs([]string{"run", "-C", "c.toml", "-q", "-o", "text"})
		assert.True(t, errors.Is(app.Execute(), types.ErrDelivery))
		assert.Empty(t, out.String())
	})
}

func TestScheduleCommandRejectsInvalidSchedule(t *testing.T) {
	repo := validRepo()
	repo.cfg.Schedule = "every monday"
	app, _ := newTestApp(repo, &stubRunner{}, nil)

	app.rootCmd.SetArgs([]string{"schedule", "-C", "c.toml", "-q"})
	assert.True(t, errors.Is(app.Execute(), types.ErrConfiguration))
}

func TestScheduleCommandStopsWithContext(t *testing.T) {
	runner := &stubRunner{}
	app, _ := newTestApp(validRepo(), runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app.rootCmd.SetArgs([]string{"schedule", "-C", "c.toml", "-q"})
	assert.NoError(t, app.ExecuteContext(ctx))
}

func TestVersionCommand(t *testing.T) {
	app, out := newTestApp(validRepo(), &stubRunner{}, nil)
	app.rootCmd.SetArgs([]string{"version"})
	require.NoError(t, app.Execute())
	assert.Contains(t, out.String(), "AWS FinOps Report version:")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

func (app *CLIApp) newScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Deliver the cost report on the configured cron schedule",
		Long: "Runs the report on the cron expression in `schedule` (timezone from `timezone`)\n" +
			"until SIGINT/SIGTERM. Overlapping runs are skipped.",
		Args: cobra.NoArgs,
		RunE: app.scheduleCommand,
	}
	cmd.Flags().Bool("now", false, "Also run once immediately at startup")
	return cmd
}

func (app *CLIApp) scheduleCommand(cmd *cobra.Command, _ []string) error {
	args, cfg, runner, metricsHandler, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	runNow, _ := cmd.Flags().GetBool("now")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	job := cron.FuncJob(func() {
		if _, err := runner.Run(ctx, args); err != nil {
			pterm.Error.Printfln("Scheduled report failed: %s", err)
		}
	})
	id, err := c.AddJob(cfg.Schedule, job)
	if err != nil {
		return fmt.Errorf("%w: invalid schedule %q: %w", types.ErrConfiguration, cfg.Schedule, err)
	}

	var srv *http.Server
	if cfg.Metrics.ListenAddr != "" && metricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		srv = &http.Server{Addr: cfg.Metrics.ListenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pterm.Error.Printfln("Metrics server stopped: %s", err)
			}
		}()
		pterm.Info.Printfln("Serving metrics on %s/metrics", cfg.Metrics.ListenAddr)
	}

	c.Start()
	pterm.Info.Printfln("Report scheduled with %q (%s)", cfg.Schedule, cfg.Location())
	if runNow {
		go c.Entry(id).WrappedJob.Run()
	}

	<-ctx.Done()
	pterm.Info.Println("Stopping scheduler...")
	<-c.Stop().Done()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}

// cronLogger encaminha os logs do cron para o pterm.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	pterm.Debug.Println(append([]interface{}{"cron:", msg}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	pterm.Error.Println(append([]interface{}{"cron:", msg, err}, keysAndValues...)...)
}

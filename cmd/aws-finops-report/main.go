package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/diillson/aws-finops-report-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-finops-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-finops-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-finops-report-go/internal/adapter/driven/metrics"
	"github.com/diillson/aws-finops-report-go/internal/adapter/driven/notify"
	"github.com/diillson/aws-finops-report-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-finops-report-go/internal/application/usecase"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
	"github.com/diillson/aws-finops-report-go/pkg/console"
	"github.com/diillson/aws-finops-report-go/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), buildRunner)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildRunner inicializa os repositórios e o caso de uso para a configuração carregada.
func buildRunner(cfg *types.Config, args *types.CLIArgs, logOut io.Writer) (cli.Runner, http.Handler, error) {
	consoleImpl := console.NewConsole(args.Quiet, logOut)

	renderer, err := usecase.NewRenderer(cfg.TemplateFile)
	if err != nil {
		return nil, nil, err
	}

	factory := aws.NewClientFactory(cfg.Profile, cfg.Region)
	notifier := notify.NewWebhookNotifier(
		cfg.WebhookURL,
		cfg.WebhookSecretID,
		aws.NewSecretRepository(factory),
		cfg.DeliveryTimeout(),
	)
	recorder := metrics.NewRecorder(cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName)

	reportUseCase := usecase.NewReportUseCase(
		cfg,
		aws.NewCredentialRepository(factory),
		aws.NewCostRepository(factory),
		notifier,
		export.NewExportRepository(),
		recorder,
		renderer,
		consoleImpl,
	)

	return reportUseCase, recorder.Handler(), nil
}

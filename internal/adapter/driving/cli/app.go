package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
	"github.com/diillson/aws-finops-report-go/pkg/version"
)

// Runner executa uma geração completa do relatório.
type Runner interface {
	Run(ctx context.Context, args *types.CLIArgs) (entity.Result, error)
}

// Builder monta o Runner a partir da configuração já validada. logOut recebe logs e
// spinners; o handler devolvido expõe as métricas em modo schedule e pode ser nil.
type Builder func(cfg *types.Config, args *types.CLIArgs, logOut io.Writer) (Runner, http.Handler, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	builder    Builder
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, builder Builder) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		builder:    builder,
		version:    versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "aws-finops-report",
		Short:         "Rolling AWS cost report for the central and tenants accounts",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS FinOps Report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("env-file", "e", "", "Path to a .env file (default: .env in the current directory, if present)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Build the report without delivering it")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, text, json")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	rootCmd.AddCommand(app.newRunCommand(), app.newScheduleCommand(), app.newVersionCommand())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx as the base context of every command.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	envFile, _ := cmd.Flags().GetString("env-file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	quiet, _ := cmd.Flags().GetBool("quiet")
	output, _ := cmd.Flags().GetString("output")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")

	output = strings.ToLower(output)
	switch output {
	case "table", "text", "json":
	default:
		return nil, fmt.Errorf("%w: unsupported output format %q", types.ErrConfiguration, output)
	}

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		EnvFile:    envFile,
		DryRun:     dryRun,
		Quiet:      quiet,
		Output:     output,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}, nil
}

// loadConfig lê o arquivo (se houver), aplica o ambiente por cima e valida.
func (app *CLIApp) loadConfig(args *types.CLIArgs) (*types.Config, error) {
	cfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := app.configRepo.ApplyEnv(cfg, args.EnvFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// prepare concentra o que run e schedule fazem antes de executar.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, *types.Config, Runner, http.Handler, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if !args.Quiet && args.Output == "table" {
		displayWelcomeBanner(cmd.OutOrStdout())
		go version.CheckLatestVersion(app.version)
	}

	cfg, err := app.loadConfig(args)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	runner, metricsHandler, err := app.builder(cfg, args, logWriter(cmd, args))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return args, cfg, runner, metricsHandler, nil
}

// logWriter mantém stdout limpo quando o resultado impresso lá é text ou json.
func logWriter(cmd *cobra.Command, args *types.CLIArgs) io.Writer {
	if args.Output == "table" {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

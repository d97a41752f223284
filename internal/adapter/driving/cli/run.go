package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (app *CLIApp) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build the cost report once and deliver it",
		Args:  cobra.NoArgs,
		RunE:  app.runCommand,
	}
}

// runCommand gera o relatório uma vez. Com --output text|json o resultado vai para stdout.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	args, _, runner, _, err := app.prepare(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch args.Output {
	case "text":
		fmt.Fprint(out, result.Body)
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}

func (app *CLIApp) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "AWS FinOps Report version: %s\n", app.rootCmd.Version)
		},
	}
}

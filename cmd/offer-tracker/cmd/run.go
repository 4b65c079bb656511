package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apiclient "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/client"
)

func runCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Perform one reconciliation run and exit",
		Long: "Fetch every configured term, update the store, and notify about new\n" +
			"offers. With --api-url the run is triggered on a running server.",
		Example: `  # Run once locally
  offer-tracker run --config config.yaml

  # Trigger a run on a server
  offer-tracker run --api-url http://localhost:8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var (
				report *apiclient.RunReport
				err    error
			)
			if u := apiURL(); u != "" {
				report, err = apiclient.New(u).TriggerRun(ctx)
			} else {
				report, err = runLocal(ctx)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return outputJSON(os.Stdout, report)
			}
			return printRunReport(os.Stdout, report)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func runLocal(ctx context.Context) (*apiclient.RunReport, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = a.Close() }()

	res, err := a.engine.RunCycle(ctx)
	if err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}
	return apiclient.ReportFromResult(res), nil
}

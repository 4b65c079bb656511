package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/client"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

func runsCommand() *cobra.Command {
	var (
		jsonOut bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent reconciliation runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			runs, err := listRuns(ctx, limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return outputJSON(os.Stdout, runs)
			}

			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}
			return printRunsTable(os.Stdout, runs)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs")

	return cmd
}

func listRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if u := apiURL(); u != "" {
		return apiclient.New(u).ListRuns(ctx, limit)
	}

	var runs []domain.Run
	err := withStore(ctx, func(s store.Store) error {
		var err error
		runs, err = s.ListRuns(ctx, limit)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		return nil
	})
	return runs, err
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/client"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

const queryTimeout = 30 * time.Second

func offersCommand() *cobra.Command {
	var jsonOut bool

	offersCmd := &cobra.Command{
		Use:   "offers",
		Short: "Inspect tracked offers",
		Long: "Read the offers currently tracked in the store. With --api-url the\n" +
			"data is read from a running server instead.",
	}
	offersCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	var limit, offset int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked offers, newest first",
		Example: `  # First page
  offer-tracker offers list

  # Next page from a running server
  offer-tracker offers list --offset 50 --api-url http://localhost:8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			page, err := listOffers(ctx, limit, offset)
			if err != nil {
				return err
			}

			if jsonOut {
				return outputJSON(os.Stdout, page)
			}

			if len(page.Offers) == 0 {
				fmt.Println("No offers tracked.")
				return nil
			}

			fmt.Printf("Showing %d of %d offers\n\n", len(page.Offers), page.Total)
			return printOffersTable(os.Stdout, page.Offers)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	listCmd.Flags().IntVar(&offset, "offset", 0, "result offset")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one tracked offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			o, err := getOffer(ctx, args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return outputJSON(os.Stdout, o)
			}
			return printOfferDetail(os.Stdout, o)
		},
	}

	offersCmd.AddCommand(listCmd, showCmd)
	return offersCmd
}

func listOffers(ctx context.Context, limit, offset int) (*apiclient.OffersPage, error) {
	if u := apiURL(); u != "" {
		return apiclient.New(u).ListOffers(ctx, limit, offset)
	}

	var page *apiclient.OffersPage
	err := withStore(ctx, func(s store.Store) error {
		offers, total, err := s.ListOffers(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("listing offers: %w", err)
		}
		page = &apiclient.OffersPage{Offers: offers, Total: total, Limit: limit, Offset: offset}
		return nil
	})
	return page, err
}

func getOffer(ctx context.Context, id string) (*domain.Offer, error) {
	if u := apiURL(); u != "" {
		return apiclient.New(u).GetOffer(ctx, id)
	}

	var o *domain.Offer
	err := withStore(ctx, func(s store.Store) error {
		var err error
		o, err = s.GetOffer(ctx, id)
		if err != nil {
			return fmt.Errorf("getting offer %s: %w", id, err)
		}
		return nil
	})
	return o, err
}

// withStore opens the configured store for the duration of fn.
func withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return fn(s)
}

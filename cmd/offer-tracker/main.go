// Package main is the entry point for offer-tracker.
package main

import (
	"os"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/cmd/offer-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

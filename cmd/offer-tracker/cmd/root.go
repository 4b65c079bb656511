// Package cmd implements the CLI commands for offer-tracker.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/config"
)

const envPrefix = "OFFER_TRACKER"

var rootCmd = &cobra.Command{
	Use:   "offer-tracker",
	Short: "Track MercadoLibre listings and announce new offers",
	Long: "offer-tracker polls the MercadoLibre search API for the configured\n" +
		"terms, keeps the set of active listings in a local store, and sends a\n" +
		"notification whenever new listings show up.",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().String("config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		String("log-level", "", "override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		String("api-url", "", "query a running server instead of the local store")

	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))
	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url")))

	rootCmd.AddCommand(
		serveCommand(),
		runCommand(),
		migrateCommand(),
		offersCommand(),
		runsCommand(),
		versionCommand(),
	)
}

func initViper() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Root returns the root cobra command.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file named by --config / OFFER_TRACKER_CONFIG
// and applies the log level override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if lvl := viper.GetString("log_level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, nil
}

func apiURL() string {
	return viper.GetString("api_url")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperextractor CLI.
//
// paperextractor fetches bibliographic metadata for scholarly papers from
// the CrossRef API, aggregates the results into a JSON document, and
// exports them to a spreadsheet. Each stage is a subcommand: fetch,
// export, lookup, and archive.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/transinfo/paperextractor/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// fallbackEmail is used when no contact email is configured anywhere.
const fallbackEmail = "your-email@example.com"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// contactEmail resolves the CrossRef contact email from, in order: the
// --email flag or config/environment, the .secrets/ directory, and the
// hardcoded fallback.
func contactEmail(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return secrets.ResolveEmail(viper.GetString("contact_email"), loadedSecrets, fallbackEmail)
}

// rootCmd is the base command for the paperextractor CLI.
var rootCmd = &cobra.Command{
	Use:   "paperextractor",
	Short: "Fetch, aggregate, and export scholarly paper metadata by DOI",
	Long: `paperextractor looks up paper metadata on the CrossRef API from a list of
DOIs, normalizes each response into a structured record, writes the aggregate
results (successes and failures) to a JSON document, and flattens successful
records into a single-sheet spreadsheet.

Each stage is a subcommand: fetch (DOI list to JSON), export (JSON to xlsx),
lookup (single DOI to stdout), and archive (JSON to a local SQLite database).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperextractor.yaml or ~/.config/paperextractor/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperextractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperextractor"))
		}
	}

	viper.SetEnvPrefix("PAPEREXTRACTOR")
	viper.AutomaticEnv()

	// The old extraction scripts read CROSSREF_EMAIL; keep honoring it.
	viper.BindEnv("contact_email", "PAPEREXTRACTOR_CONTACT_EMAIL", "CROSSREF_EMAIL")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

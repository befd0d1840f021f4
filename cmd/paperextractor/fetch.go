package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/transinfo/paperextractor/internal/batch"
	"github.com/transinfo/paperextractor/internal/crossref"
	"github.com/transinfo/paperextractor/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "paperextractor/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [doi-list-file]",
	Short: "Fetch metadata for a list of DOIs and write a JSON result document",
	Long: `Fetch reads DOIs from a text/CSV file (one per row, first column), looks
each one up on the CrossRef API in input order with a fixed delay between
requests, and writes an aggregate JSON document containing every outcome,
success or failure, plus summary counts. One failed DOI never aborts the
batch; only an unreadable input file or unwritable output file does.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "metadata.json", "output JSON file")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive API calls")
	fetchCmd.Flags().String("email", "", "CrossRef contact email (default: config, CROSSREF_EMAIL, or .secrets/crossref-email)")
	fetchCmd.Flags().String("metadata-dir", "", "also write one YAML record per fetched paper into this directory")

	rootCmd.AddCommand(fetchCmd)
}

func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	email, _ := cmd.Flags().GetString("email")
	metadataDir, _ := cmd.Flags().GetString("metadata-dir")

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		ContactEmail: contactEmail(email),
		RequestDelay: delay,
		MetadataDir:  metadataDir,
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	cfg := fetchConfig(cmd)

	client := crossref.New(cfg)
	summary, err := batch.Run(cmd.Context(), client, args[0], outPath, cfg, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Results saved in: %s\n", outPath)
	if summary.HasFailures() {
		return fmt.Errorf("%d DOI lookup(s) failed", summary.Failed)
	}
	return nil
}

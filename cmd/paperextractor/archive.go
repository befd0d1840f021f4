package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transinfo/paperextractor/internal/archive"
	"github.com/transinfo/paperextractor/internal/batch"
	"github.com/transinfo/paperextractor/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep fetched metadata in a local SQLite database",
	Long: `Archive maintains a local SQLite database of fetched paper metadata.
Use subcommands to ingest a JSON result document or list archived papers.
Papers are keyed by DOI, so re-ingesting a newer run refreshes existing
rows instead of duplicating them.`,
}

var archiveStoreCmd = &cobra.Command{
	Use:   "store [result-json]",
	Short: "Ingest a JSON result document into the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveStore,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived papers",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

func init() {
	archiveCmd.PersistentFlags().String("db", "archive.db", "path to the archive database file")

	archiveCmd.AddCommand(archiveStoreCmd)
	archiveCmd.AddCommand(archiveListCmd)

	rootCmd.AddCommand(archiveCmd)
}

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	return archive.NewStore(types.ArchiveConfig{DBPath: dbPath})
}

func runArchiveStore(cmd *cobra.Command, args []string) error {
	doc, err := batch.ReadResultDocument(args[0])
	if err != nil {
		return err
	}

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), doc, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Archived %d entries from %s\n", summary.Total(), args[0])
	return nil
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.List(cmd.Context(), os.Stdout)
}

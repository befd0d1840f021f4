package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/transinfo/paperextractor/internal/export"
	"github.com/transinfo/paperextractor/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [result-json] [output-xlsx]",
	Short: "Flatten a JSON result document into a single-sheet spreadsheet",
	Long: `Export loads a result document produced by fetch, keeps the successful
entries, flattens each record into one row of 18 fixed columns (sequence
fields become bracketed, comma-joined strings), and writes a single-sheet
xlsx workbook with columns auto-sized to their longest value.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("sheet", "", `worksheet name (default "Paper Metadata")`)
	exportCmd.Flags().Float64("max-col-width", 0, "column width cap in characters (default 50)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	sheet, _ := cmd.Flags().GetString("sheet")
	maxWidth, _ := cmd.Flags().GetFloat64("max-col-width")

	cfg := types.ExportConfig{
		SheetName:      sheet,
		MaxColumnWidth: maxWidth,
	}

	rows, err := export.Export(args[0], args[1], cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Spreadsheet created: %s\n", args[1])
	fmt.Printf("Total papers exported: %d\n", rows)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the sequential DOI fetch loop and writes the
// aggregate result document.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/transinfo/paperextractor/internal/crossref"
	"github.com/transinfo/paperextractor/pkg/types"
)

// Summary holds the outcome counts of a batch run.
type Summary struct {
	Successful int
	Failed     int
}

// Total returns the total number of DOIs processed.
func (s Summary) Total() int {
	return s.Successful + s.Failed
}

// HasFailures reports whether any lookups failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Run reads the DOI list at listPath, fetches each DOI in input order with
// a fixed delay between consecutive calls, and writes the aggregate result
// document to outPath in a single pass at the end. Every per-item outcome,
// success or failure, is recorded; only an unreadable input list, an
// unwritable output file, or context cancellation aborts the run. Per-item
// status lines are printed to w.
func Run(ctx context.Context, client *crossref.Client, listPath, outPath string, cfg types.FetchConfig, w io.Writer) (Summary, error) {
	dois, err := ReadDOIList(listPath)
	if err != nil {
		return Summary{}, err
	}

	if cfg.MetadataDir != "" {
		if err := os.MkdirAll(cfg.MetadataDir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("creating metadata directory %s: %w", cfg.MetadataDir, err)
		}
	}

	doc := types.ResultDocument{
		Metadata: types.RunMetadata{
			ExtractionDate: time.Now().Format(time.RFC3339),
			TotalDOIs:      len(dois),
			SourceFile:     listPath,
		},
		Papers: make([]types.PaperEntry, 0, len(dois)),
	}

	for i, doi := range dois {
		if i > 0 && cfg.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				return tally(doc.Papers), ctx.Err()
			case <-time.After(cfg.RequestDelay):
			}
		} else if err := ctx.Err(); err != nil {
			return tally(doc.Papers), err
		}

		doc.Papers = append(doc.Papers, fetchEntry(ctx, client, doi, cfg, w))
	}

	summary := tally(doc.Papers)
	doc.Summary = types.RunSummary{
		SuccessfulExtractions: summary.Successful,
		FailedExtractions:     summary.Failed,
		CompletionTime:        time.Now().Format(time.RFC3339),
	}

	if err := writeResultDocument(&doc, outPath); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "\nBatch summary: %d succeeded, %d failed (total: %d)\n",
		summary.Successful, summary.Failed, summary.Total())
	return summary, nil
}

// fetchEntry looks up one DOI and wraps the outcome as a result entry.
// Errors are captured, never propagated, so the batch continues.
func fetchEntry(ctx context.Context, client *crossref.Client, doi string, cfg types.FetchConfig, w io.Writer) types.PaperEntry {
	paper, err := client.Fetch(ctx, doi)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doi, err)
		return types.PaperEntry{
			Status:       types.StatusError,
			Timestamp:    time.Now().Format(time.RFC3339),
			DOI:          doi,
			ErrorMessage: err.Error(),
		}
	}

	fmt.Fprintf(w, "fetched: %s\n", doi)

	if cfg.MetadataDir != "" {
		if err := writeMetadata(paper, filepath.Join(cfg.MetadataDir, doiSlug(doi)+".yaml")); err != nil {
			fmt.Fprintf(w, "  warning: metadata write failed for %s: %v\n", doi, err)
		}
	}

	return types.PaperEntry{
		Status:    types.StatusSuccess,
		Timestamp: time.Now().Format(time.RFC3339),
		Paper:     paper,
	}
}

// tally computes summary counts from the status tags across entries.
func tally(papers []types.PaperEntry) Summary {
	var s Summary
	for _, p := range papers {
		switch p.Status {
		case types.StatusSuccess:
			s.Successful++
		case types.StatusError:
			s.Failed++
		}
	}
	return s
}

// writeResultDocument persists the document as indented UTF-8 JSON with
// HTML escaping disabled so non-ASCII characters are preserved literally.
func writeResultDocument(doc *types.ResultDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	encErr := enc.Encode(doc)
	closeErr := f.Close()
	if encErr != nil {
		return fmt.Errorf("writing result document: %w", encErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing output file: %w", closeErr)
	}
	return nil
}

// ReadResultDocument loads a previously written result document. The
// exporter and the archive consume documents through this.
func ReadResultDocument(path string) (*types.ResultDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result document %s: %w", path, err)
	}
	var doc types.ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing result document %s: %w", path, err)
	}
	return &doc, nil
}

// writeMetadata writes a single paper record to a YAML file.
func writeMetadata(paper *types.PaperMetadata, path string) error {
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// doiSlug returns a filesystem-safe filename stem for the DOI.
func doiSlug(doi string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(doi)
}

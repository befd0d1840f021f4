// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists fetched result documents in a local SQLite
// database so papers accumulate across runs. Ingestion is a post-hoc step
// over a finished document; it never interleaves with a fetch run.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/transinfo/paperextractor/pkg/types"
)

// Store manages the archive SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive database at cfg.DBPath and creates
// the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			extraction_date TEXT,
			source_file TEXT,
			total_dois INTEGER,
			successful INTEGER,
			failed INTEGER,
			completion_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			doi TEXT PRIMARY KEY,
			title TEXT,
			journal TEXT,
			publication_date TEXT,
			article_type TEXT,
			citations INTEGER,
			author_count INTEGER,
			record TEXT NOT NULL,
			fetched_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS failures (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			doi TEXT NOT NULL,
			error_message TEXT,
			timestamp TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_run_id ON failures(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from one archive ingestion.
type IngestSummary struct {
	Stored   int
	Updated  int
	Failures int
}

// Total returns the number of document entries processed.
func (s IngestSummary) Total() int {
	return s.Stored + s.Updated + s.Failures
}

// Ingest records one result document: a run row, an upsert per successful
// paper (keyed by DOI, so re-running a batch refreshes existing rows), and
// a failure row per error entry. The whole document lands in one
// transaction.
func (s *Store) Ingest(ctx context.Context, doc *types.ResultDocument, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (extraction_date, source_file, total_dois, successful, failed, completion_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		doc.Metadata.ExtractionDate, doc.Metadata.SourceFile, doc.Metadata.TotalDOIs,
		doc.Summary.SuccessfulExtractions, doc.Summary.FailedExtractions, doc.Summary.CompletionTime,
	)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading run id: %w", err)
	}

	var summary IngestSummary
	for _, entry := range doc.Papers {
		switch entry.Status {
		case types.StatusSuccess:
			if entry.Paper == nil {
				continue
			}
			updated, err := upsertPaper(ctx, tx, entry)
			if err != nil {
				return summary, err
			}
			if updated {
				fmt.Fprintf(w, "updated %s\n", entry.Paper.Identifier.DOI)
				summary.Updated++
			} else {
				fmt.Fprintf(w, "stored  %s\n", entry.Paper.Identifier.DOI)
				summary.Stored++
			}
		case types.StatusError:
			_, err := tx.ExecContext(ctx,
				`INSERT INTO failures (run_id, doi, error_message, timestamp) VALUES (?, ?, ?, ?)`,
				runID, entry.DOI, entry.ErrorMessage, entry.Timestamp,
			)
			if err != nil {
				return summary, fmt.Errorf("inserting failure for %s: %w", entry.DOI, err)
			}
			summary.Failures++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "\nstored: %d, updated: %d, failures: %d\n",
		summary.Stored, summary.Updated, summary.Failures)
	return summary, nil
}

func upsertPaper(ctx context.Context, tx *sql.Tx, entry types.PaperEntry) (updated bool, err error) {
	p := entry.Paper

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM papers WHERE doi = ?`, p.Identifier.DOI,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking paper %s: %w", p.Identifier.DOI, err)
	}

	record, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("marshaling record for %s: %w", p.Identifier.DOI, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO papers (doi, title, journal, publication_date, article_type, citations, author_count, record, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(doi) DO UPDATE SET
			title=excluded.title, journal=excluded.journal,
			publication_date=excluded.publication_date, article_type=excluded.article_type,
			citations=excluded.citations, author_count=excluded.author_count,
			record=excluded.record, fetched_at=excluded.fetched_at`,
		p.Identifier.DOI, p.Title, p.Journal.Name, p.Publication.Date,
		p.Publication.Type, p.Publication.Citations, len(p.Authors),
		string(record), entry.Timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("upserting paper %s: %w", p.Identifier.DOI, err)
	}
	return exists > 0, nil
}

// ArchivedPaper is one row of the papers table.
type ArchivedPaper struct {
	DOI             string
	Title           string
	Journal         string
	PublicationDate string
	Citations       int
	AuthorCount     int
	FetchedAt       string
}

// Papers returns all archived papers, most recently fetched first.
func (s *Store) Papers(ctx context.Context) ([]ArchivedPaper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doi, title, journal, publication_date, citations, author_count, fetched_at
		 FROM papers ORDER BY fetched_at DESC, doi`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []ArchivedPaper
	for rows.Next() {
		var p ArchivedPaper
		if err := rows.Scan(&p.DOI, &p.Title, &p.Journal, &p.PublicationDate,
			&p.Citations, &p.AuthorCount, &p.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// Get returns the full stored record for one DOI, or sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, doi string) (*types.PaperMetadata, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM papers WHERE doi = ?`, doi,
	).Scan(&record)
	if err != nil {
		return nil, err
	}
	var p types.PaperMetadata
	if err := json.Unmarshal([]byte(record), &p); err != nil {
		return nil, fmt.Errorf("parsing stored record for %s: %w", doi, err)
	}
	return &p, nil
}

// List prints the archived papers as a fixed-width table to w.
func (s *Store) List(ctx context.Context, w io.Writer) error {
	papers, err := s.Papers(ctx)
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		fmt.Fprintln(w, "Archive is empty.")
		return nil
	}

	fmt.Fprintf(w, "%-32s  %-44s  %-24s  %-10s  %5s\n",
		"DOI", "Title", "Journal", "Date", "Cites")
	fmt.Fprintln(w, strings.Repeat("-", 124))
	for _, p := range papers {
		fmt.Fprintf(w, "%-32s  %-44s  %-24s  %-10s  %5d\n",
			truncate(p.DOI, 32), truncate(p.Title, 44), truncate(p.Journal, 24),
			p.PublicationDate, p.Citations)
	}
	fmt.Fprintf(w, "\n%d papers archived\n", len(papers))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

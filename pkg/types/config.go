package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the product token sent in the User-Agent header
	// (e.g. "paperextractor/0.1"). The contact email is appended as a
	// mailto clause for CrossRef's polite pool.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the metadata fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ContactEmail identifies the operator to CrossRef. It is resolved by
	// the CLI (flag, environment, secrets file, fallback) and passed in
	// explicitly; the fetcher never reads the process environment.
	ContactEmail string `json:"contact_email" yaml:"contact_email"`

	// RequestDelay is the fixed delay between consecutive API calls
	// (default 1s). It is a courtesy throttle, not a backoff.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// MetadataDir, when set, receives one YAML record per successfully
	// fetched paper in addition to the aggregate JSON document.
	MetadataDir string `json:"metadata_dir,omitempty" yaml:"metadata_dir,omitempty"`
}

// ExportConfig holds settings for the spreadsheet export stage.
type ExportConfig struct {
	// SheetName is the name of the single worksheet (default "Paper Metadata").
	SheetName string `json:"sheet_name" yaml:"sheet_name"`

	// MaxColumnWidth caps the auto-sized column width (default 50).
	MaxColumnWidth float64 `json:"max_column_width" yaml:"max_column_width"`
}

// ArchiveConfig holds settings for the SQLite archive.
type ArchiveConfig struct {
	// DBPath is the path to the archive database file (default "archive.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared record and configuration structs for
// paperextractor. Records are built once at the fetcher boundary and never
// mutated afterward.
package types

// Identifier names a paper by its DOI and resolver URL.
type Identifier struct {
	DOI string `json:"doi" yaml:"doi"`
	URL string `json:"url" yaml:"url"`
}

// Author is one entry in a paper's author list, reconstructed from the
// provider's parallel sequences.
type Author struct {
	// Index is the 1-based position in the author list.
	Index int `json:"index" yaml:"index"`

	// Name is the concatenated given and family name.
	Name string `json:"name" yaml:"name"`

	// ORCID is the author's persistent researcher identifier, or nil
	// when the provider lists none (serialized as null).
	ORCID *string `json:"orcid" yaml:"orcid"`

	// Sequence is the provider's raw sequence tag (e.g. "first", "additional").
	Sequence string `json:"sequence" yaml:"sequence"`

	// IsCorresponding is derived from Sequence, not sourced from the
	// provider. CrossRef does not publish corresponding-author status;
	// the sequence tag is used as a stand-in.
	IsCorresponding bool `json:"is_corresponding" yaml:"is_corresponding"`

	// Affiliations lists the author's institutional affiliations.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`
}

// Journal holds container-level metadata. ImpactFactor and Quartile are
// placeholder constants; CrossRef does not provide journal ranking metrics.
type Journal struct {
	Name         string   `json:"name" yaml:"name"`
	ISSN         []string `json:"issn" yaml:"issn"`
	Type         string   `json:"type" yaml:"type"`
	ImpactFactor string   `json:"impact_factor" yaml:"impact_factor"`
	Quartile     string   `json:"quartile" yaml:"quartile"`
}

// Publication holds publication-event metadata.
type Publication struct {
	Type string `json:"type" yaml:"type"`

	// Date is a partial date string: "YYYY-MM-DD", "YYYY-MM", "YYYY",
	// or "" when the provider gives no usable date.
	Date string `json:"date" yaml:"date"`

	// Citations is the provider's is-referenced-by count.
	Citations int `json:"citations" yaml:"citations"`
}

// References summarizes a paper's reference list, restricted to entries
// that carry a DOI.
type References struct {
	Count int      `json:"count" yaml:"count"`
	DOIs  []string `json:"dois" yaml:"dois"`
}

// Funder is one funding source with its award identifiers.
type Funder struct {
	Funder string   `json:"funder" yaml:"funder"`
	Awards []string `json:"awards" yaml:"awards"`
}

// PaperMetadata is the normalized record for one successfully fetched DOI.
// Slice fields are always non-nil so they serialize as empty arrays,
// never null.
type PaperMetadata struct {
	Identifier   Identifier  `json:"identifier" yaml:"identifier"`
	Title        string      `json:"title" yaml:"title"`
	Abstract     string      `json:"abstract" yaml:"abstract"`
	Authors      []Author    `json:"authors" yaml:"authors"`
	Journal      Journal     `json:"journal" yaml:"journal"`
	Publication  Publication `json:"publication" yaml:"publication"`
	SubjectAreas []string    `json:"subject_areas" yaml:"subject_areas"`
	References   References  `json:"references" yaml:"references"`
	Funding      []Funder    `json:"funding" yaml:"funding"`
}

// Entry status tags.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// PaperEntry is one element of a ResultDocument's papers list: either a
// success entry carrying the normalized record, or an error entry carrying
// the failed DOI and message.
type PaperEntry struct {
	Status    string `json:"status" yaml:"status"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Success entries only.
	Paper *PaperMetadata `json:"paper,omitempty" yaml:"paper,omitempty"`

	// Error entries only.
	DOI          string `json:"doi,omitempty" yaml:"doi,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// RunMetadata describes the batch run that produced a ResultDocument.
type RunMetadata struct {
	ExtractionDate string `json:"extraction_date" yaml:"extraction_date"`
	TotalDOIs      int    `json:"total_dois" yaml:"total_dois"`
	SourceFile     string `json:"source_file" yaml:"source_file"`
}

// RunSummary tallies entry status tags across a ResultDocument.
type RunSummary struct {
	SuccessfulExtractions int    `json:"successful_extractions" yaml:"successful_extractions"`
	FailedExtractions     int    `json:"failed_extractions" yaml:"failed_extractions"`
	CompletionTime        string `json:"completion_time" yaml:"completion_time"`
}

// ResultDocument is the aggregate output of one batch run. It is append-only
// while the run is in progress and immutable once written.
type ResultDocument struct {
	Metadata RunMetadata  `json:"metadata" yaml:"metadata"`
	Papers   []PaperEntry `json:"papers" yaml:"papers"`
	Summary  RunSummary   `json:"summary" yaml:"summary"`
}

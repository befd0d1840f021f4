// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref fetches bibliographic metadata for DOIs from the
// CrossRef works API and normalizes responses into typed records.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/transinfo/paperextractor/pkg/types"
)

// APIBase is the CrossRef work-lookup endpoint. Declared as a var so tests
// can substitute an httptest server.
var APIBase = "https://api.crossref.org/works/"

// FetchError describes a per-DOI lookup failure: a transport error or a
// non-success HTTP response. It is local to one item and never aborts a
// batch.
type FetchError struct {
	// StatusCode is the HTTP status of the provider response, or 0 when
	// no response was received (DNS failure, timeout, connection reset).
	StatusCode int

	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// Client fetches paper metadata from CrossRef. Configuration is explicit;
// the client never reads the process environment.
type Client struct {
	http *http.Client
	cfg  types.FetchConfig
}

// New creates a Client with an HTTP client derived from cfg.Timeout.
func New(cfg types.FetchConfig) *Client {
	return NewWithHTTPClient(&http.Client{Timeout: cfg.Timeout}, cfg)
}

// NewWithHTTPClient creates a Client using the given HTTP client. Tests use
// this to inject an httptest client.
func NewWithHTTPClient(httpClient *http.Client, cfg types.FetchConfig) *Client {
	return &Client{http: httpClient, cfg: cfg}
}

// Fetch retrieves and normalizes the metadata record for one DOI. Transport
// failures and non-2xx responses return a *FetchError. There are no
// retries; throttling between calls is the caller's concern.
func (c *Client) Fetch(ctx context.Context, doi string) (*types.PaperMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, APIBase+doi, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s (mailto:%s)", c.cfg.UserAgent, c.cfg.ContactEmail))
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("CrossRef API request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("CrossRef API returned HTTP %d for %s", resp.StatusCode, doi),
		}
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response for %s: %w", doi, err)
	}

	return normalizeWork(cr.Message)
}

// CrossRef API JSON structures. Fields the pipeline does not use are
// omitted; missing fields decode to zero values and are defaulted during
// normalization.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	DOI                 string              `json:"DOI"`
	Title               []string            `json:"title"`
	Abstract            string              `json:"abstract"`
	Author              []crossrefAuthor    `json:"author"`
	ContainerTitle      []string            `json:"container-title"`
	ISSN                []string            `json:"ISSN"`
	Type                string              `json:"type"`
	Subject             []string            `json:"subject"`
	PublishedPrint      crossrefDate        `json:"published-print"`
	PublishedOnline     crossrefDate        `json:"published-online"`
	IsReferencedByCount int                 `json:"is-referenced-by-count"`
	Reference           []crossrefReference `json:"reference"`
	Funder              []crossrefFunder    `json:"funder"`
}

type crossrefAuthor struct {
	Given       string                `json:"given"`
	Family      string                `json:"family"`
	ORCID       string                `json:"ORCID"`
	Sequence    string                `json:"sequence"`
	Affiliation []crossrefAffiliation `json:"affiliation"`
}

type crossrefAffiliation struct {
	Name string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

type crossrefReference struct {
	DOI string `json:"DOI"`
}

type crossrefFunder struct {
	Name  string   `json:"name"`
	Award []string `json:"award"`
}

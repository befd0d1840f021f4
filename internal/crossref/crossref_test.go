// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/transinfo/paperextractor/pkg/types"
)

const sampleWorkJSON = `{
  "status": "ok",
  "message": {
    "DOI": "10.1016/j.commatsci.2009.03.015",
    "title": ["Ab initio study of grain boundary energetics"],
    "abstract": "Grain boundaries in α-iron are studied.",
    "author": [
      {
        "given": "Carol",
        "family": "White",
        "ORCID": "https://orcid.org/0000-0002-1825-0097",
        "sequence": "first",
        "affiliation": [{"name": "MIT"}, {"name": "Harvard"}]
      },
      {
        "given": "Dave",
        "family": "Brown",
        "sequence": "additional",
        "affiliation": []
      }
    ],
    "container-title": ["Computational Materials Science"],
    "ISSN": ["0927-0256"],
    "type": "journal-article",
    "subject": ["Materials Science"],
    "published-print": {"date-parts": [[2009, 7, 15]]},
    "is-referenced-by-count": 42,
    "reference": [
      {"DOI": "10.1103/PhysRev.136.B864"},
      {"key": "ref-without-doi"}
    ],
    "funder": [{"name": "NSF", "award": ["DMR-123456"]}]
  }
}`

func testFetchConfig() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "paperextractor-test/0.1",
		},
		ContactEmail: "tester@example.com",
	}
}

// overrideAPIBase points the package at a test server and returns a
// cleanup function that restores the original endpoint.
func overrideAPIBase(tsURL string) func() {
	orig := APIBase
	APIBase = tsURL + "/works/"
	return func() { APIBase = orig }
}

func TestFetchSuccess(t *testing.T) {
	var gotUserAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleWorkJSON)
	}))
	defer ts.Close()
	restore := overrideAPIBase(ts.URL)
	defer restore()

	client := NewWithHTTPClient(ts.Client(), testFetchConfig())
	paper, err := client.Fetch(context.Background(), "10.1016/j.commatsci.2009.03.015")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(gotUserAgent, "mailto:tester@example.com") {
		t.Errorf("User-Agent = %q, want mailto clause", gotUserAgent)
	}

	if paper.Identifier.DOI != "10.1016/j.commatsci.2009.03.015" {
		t.Errorf("DOI = %q", paper.Identifier.DOI)
	}
	if paper.Identifier.URL != "https://doi.org/10.1016/j.commatsci.2009.03.015" {
		t.Errorf("URL = %q", paper.Identifier.URL)
	}
	if paper.Title != "Ab initio study of grain boundary energetics" {
		t.Errorf("Title = %q", paper.Title)
	}
	if !strings.Contains(paper.Abstract, "α-iron") {
		t.Errorf("Abstract = %q, want decoded non-ASCII", paper.Abstract)
	}

	if len(paper.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(paper.Authors))
	}
	first, second := paper.Authors[0], paper.Authors[1]
	if first.Index != 1 || second.Index != 2 {
		t.Errorf("author indexes = %d, %d, want 1, 2", first.Index, second.Index)
	}
	if first.Name != "Carol White" {
		t.Errorf("Authors[0].Name = %q", first.Name)
	}
	if first.ORCID == nil || *first.ORCID != "https://orcid.org/0000-0002-1825-0097" {
		t.Errorf("Authors[0].ORCID = %v", first.ORCID)
	}
	if second.ORCID != nil {
		t.Errorf("Authors[1].ORCID = %v, want nil", second.ORCID)
	}
	if first.IsCorresponding {
		t.Error("first author should not be flagged corresponding")
	}
	if !second.IsCorresponding {
		t.Error("additional author should be flagged corresponding")
	}
	if len(first.Affiliations) != 2 || first.Affiliations[0] != "MIT" {
		t.Errorf("Authors[0].Affiliations = %v", first.Affiliations)
	}
	if second.Affiliations == nil || len(second.Affiliations) != 0 {
		t.Errorf("Authors[1].Affiliations = %v, want empty non-nil", second.Affiliations)
	}

	if paper.Journal.Name != "Computational Materials Science" {
		t.Errorf("Journal.Name = %q", paper.Journal.Name)
	}
	if len(paper.Journal.ISSN) != 1 || paper.Journal.ISSN[0] != "0927-0256" {
		t.Errorf("Journal.ISSN = %v", paper.Journal.ISSN)
	}
	if paper.Journal.ImpactFactor != "Not available via CrossRef" {
		t.Errorf("Journal.ImpactFactor = %q", paper.Journal.ImpactFactor)
	}

	if paper.Publication.Date != "2009-07-15" {
		t.Errorf("Publication.Date = %q, want 2009-07-15", paper.Publication.Date)
	}
	if paper.Publication.Citations != 42 {
		t.Errorf("Publication.Citations = %d, want 42", paper.Publication.Citations)
	}

	if paper.References.Count != 1 {
		t.Errorf("References.Count = %d, want 1 (only entries with DOIs)", paper.References.Count)
	}
	if len(paper.References.DOIs) != 1 || paper.References.DOIs[0] != "10.1103/PhysRev.136.B864" {
		t.Errorf("References.DOIs = %v", paper.References.DOIs)
	}

	if len(paper.Funding) != 1 || paper.Funding[0].Funder != "NSF" {
		t.Errorf("Funding = %v", paper.Funding)
	}
	if len(paper.Funding[0].Awards) != 1 || paper.Funding[0].Awards[0] != "DMR-123456" {
		t.Errorf("Funding[0].Awards = %v", paper.Funding[0].Awards)
	}
}

func TestFetchEmptyWork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "ok", "message": {"DOI": "10.1234/minimal"}}`)
	}))
	defer ts.Close()
	restore := overrideAPIBase(ts.URL)
	defer restore()

	client := NewWithHTTPClient(ts.Client(), testFetchConfig())
	paper, err := client.Fetch(context.Background(), "10.1234/minimal")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if paper.Title != "" {
		t.Errorf("Title = %q, want empty", paper.Title)
	}
	if paper.Authors == nil || len(paper.Authors) != 0 {
		t.Errorf("Authors = %v, want empty non-nil", paper.Authors)
	}
	if paper.SubjectAreas == nil || len(paper.SubjectAreas) != 0 {
		t.Errorf("SubjectAreas = %v, want empty non-nil", paper.SubjectAreas)
	}
	if paper.Journal.ISSN == nil {
		t.Error("Journal.ISSN should be empty, not nil")
	}
	if paper.Funding == nil || paper.References.DOIs == nil {
		t.Error("Funding and References.DOIs should be empty, not nil")
	}
	if paper.Publication.Date != "" {
		t.Errorf("Publication.Date = %q, want empty", paper.Publication.Date)
	}
}

func TestFetchPublishedOnlineFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {"DOI": "10.1234/online", "published-online": {"date-parts": [[2021, 3]]}}}`)
	}))
	defer ts.Close()
	restore := overrideAPIBase(ts.URL)
	defer restore()

	client := NewWithHTTPClient(ts.Client(), testFetchConfig())
	paper, err := client.Fetch(context.Background(), "10.1234/online")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if paper.Publication.Date != "2021-03" {
		t.Errorf("Publication.Date = %q, want 2021-03", paper.Publication.Date)
	}
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()
	restore := overrideAPIBase(ts.URL)
	defer restore()

	client := NewWithHTTPClient(ts.Client(), testFetchConfig())
	_, err := client.Fetch(context.Background(), "10.9999/does-not-exist")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if !strings.Contains(fe.Error(), "HTTP 404") {
		t.Errorf("Error() = %q, want mention of HTTP 404", fe.Error())
	}
}

func TestFetchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewWithHTTPClient(ts.Client(), testFetchConfig())
	restore := overrideAPIBase(ts.URL)
	defer restore()
	ts.Close() // connection refused from here on

	_, err := client.Fetch(context.Background(), "10.1234/unreachable")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", fe.StatusCode)
	}
}

func TestFetchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": not-json`)
	}))
	defer ts.Close()
	restore := overrideAPIBase(ts.URL)
	defer restore()

	client := NewWithHTTPClient(ts.Client(), testFetchConfig())
	_, err := client.Fetch(context.Background(), "10.1234/garbled")
	if err == nil {
		t.Fatal("expected error for malformed response body")
	}
	if !strings.Contains(err.Error(), "parsing CrossRef response") {
		t.Errorf("error = %q, want parse error", err.Error())
	}
}

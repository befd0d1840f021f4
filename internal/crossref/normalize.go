// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/transinfo/paperextractor/pkg/types"
)

// doiResolverBase prefixes a bare DOI to form its resolver URL.
const doiResolverBase = "https://doi.org/"

// notAvailable is the placeholder for journal ranking metrics CrossRef
// does not provide.
const notAvailable = "Not available via CrossRef"

// ErrMalformedAuthorData reports that the provider's parallel author
// sequences have mismatched lengths.
var ErrMalformedAuthorData = errors.New("malformed author data")

// AuthorBlock is the provider-boundary representation of an author list:
// four parallel sequences aligned by position.
type AuthorBlock struct {
	Names        []string
	ORCIDs       []string
	Sequences    []string
	Affiliations [][]string
}

// NormalizeAuthors reconstructs one typed Author per position from the
// block's parallel sequences. The equal-length invariant is checked here,
// once, rather than trusted downstream: a mismatch returns
// ErrMalformedAuthorData instead of silently truncating.
func NormalizeAuthors(block AuthorBlock) ([]types.Author, error) {
	n := len(block.Names)
	if len(block.ORCIDs) != n || len(block.Sequences) != n || len(block.Affiliations) != n {
		return nil, fmt.Errorf("%w: names=%d orcids=%d sequences=%d affiliations=%d",
			ErrMalformedAuthorData, n, len(block.ORCIDs), len(block.Sequences), len(block.Affiliations))
	}

	authors := make([]types.Author, 0, n)
	for i := 0; i < n; i++ {
		var orcid *string
		if block.ORCIDs[i] != "" {
			o := block.ORCIDs[i]
			orcid = &o
		}
		affiliations := block.Affiliations[i]
		if affiliations == nil {
			affiliations = []string{}
		}
		authors = append(authors, types.Author{
			Index:           i + 1,
			Name:            block.Names[i],
			ORCID:           orcid,
			Sequence:        block.Sequences[i],
			IsCorresponding: isCorresponding(block.Sequences[i]),
			Affiliations:    affiliations,
		})
	}
	return authors, nil
}

// isCorresponding derives the corresponding-author flag from the sequence
// tag. CrossRef has no documented corresponding-author convention; this
// stand-in marks every non-first author and exists for compatibility with
// documents produced before this tool.
func isCorresponding(sequence string) bool {
	return sequence == "additional" || sequence == "last"
}

// FormatDate renders a CrossRef date-parts structure as a partial date
// string: "YYYY-MM-DD" with three parts, "YYYY-MM" with two, "YYYY" with
// one. Absent, empty, or out-of-range data yields ""; it never panics.
func FormatDate(dateParts [][]int) string {
	if len(dateParts) == 0 || len(dateParts[0]) == 0 {
		return ""
	}
	parts := dateParts[0]

	switch {
	case len(parts) >= 3:
		year, month, day := parts[0], parts[1], parts[2]
		if !validYearMonth(year, month) || day < 1 || day > daysIn(year, month) {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case len(parts) == 2:
		if !validYearMonth(parts[0], parts[1]) {
			return ""
		}
		return fmt.Sprintf("%04d-%02d", parts[0], parts[1])
	default:
		return strconv.Itoa(parts[0])
	}
}

func validYearMonth(year, month int) bool {
	return year >= 1 && month >= 1 && month <= 12
}

// daysIn returns the number of days in the given month. Day 0 of the next
// month normalizes to the last day of this one.
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// normalizeWork maps a decoded CrossRef work onto the fixed output record.
// Missing provider fields default to empty strings and empty sequences;
// sequence-valued fields are never nil.
func normalizeWork(work crossrefWork) (*types.PaperMetadata, error) {
	block := AuthorBlock{
		Names:        make([]string, 0, len(work.Author)),
		ORCIDs:       make([]string, 0, len(work.Author)),
		Sequences:    make([]string, 0, len(work.Author)),
		Affiliations: make([][]string, 0, len(work.Author)),
	}
	for _, a := range work.Author {
		block.Names = append(block.Names, strings.TrimSpace(a.Given+" "+a.Family))
		block.ORCIDs = append(block.ORCIDs, a.ORCID)
		block.Sequences = append(block.Sequences, a.Sequence)
		affiliations := make([]string, 0, len(a.Affiliation))
		for _, aff := range a.Affiliation {
			if aff.Name != "" {
				affiliations = append(affiliations, aff.Name)
			}
		}
		block.Affiliations = append(block.Affiliations, affiliations)
	}

	authors, err := NormalizeAuthors(block)
	if err != nil {
		return nil, err
	}

	// published-print is preferred; published-online is the fallback.
	date := FormatDate(work.PublishedPrint.DateParts)
	if len(work.PublishedPrint.DateParts) == 0 {
		date = FormatDate(work.PublishedOnline.DateParts)
	}

	referenceDOIs := make([]string, 0, len(work.Reference))
	for _, ref := range work.Reference {
		if ref.DOI != "" {
			referenceDOIs = append(referenceDOIs, ref.DOI)
		}
	}

	funding := make([]types.Funder, 0, len(work.Funder))
	for _, f := range work.Funder {
		awards := f.Award
		if awards == nil {
			awards = []string{}
		}
		funding = append(funding, types.Funder{Funder: f.Name, Awards: awards})
	}

	return &types.PaperMetadata{
		Identifier: types.Identifier{
			DOI: work.DOI,
			URL: doiResolverBase + work.DOI,
		},
		Title:    firstOrEmpty(work.Title),
		Abstract: work.Abstract,
		Authors:  authors,
		Journal: types.Journal{
			Name:         firstOrEmpty(work.ContainerTitle),
			ISSN:         nonNil(work.ISSN),
			Type:         work.Type,
			ImpactFactor: notAvailable,
			Quartile:     notAvailable,
		},
		Publication: types.Publication{
			Type:      work.Type,
			Date:      date,
			Citations: work.IsReferencedByCount,
		},
		SubjectAreas: nonNil(work.Subject),
		References: types.References{
			Count: len(referenceDOIs),
			DOIs:  referenceDOIs,
		},
		Funding: funding,
	}, nil
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

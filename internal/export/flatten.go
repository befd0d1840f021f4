// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export flattens successful metadata records into spreadsheet
// rows and writes a single-sheet workbook.
package export

import (
	"strings"

	"github.com/transinfo/paperextractor/pkg/types"
)

// Columns is the fixed column ordering of the exported sheet.
var Columns = []string{
	"DOI",
	"Title",
	"Abstract",
	"Author Count",
	"Authors",
	"Author Sequences",
	"Corresponding Authors",
	"Author ORCIDs",
	"Author Affiliations",
	"Journal",
	"Journal Type",
	"ISSN",
	"Publication Date",
	"Article Type",
	"Citation Count",
	"Subject Areas",
	"Reference Count",
	"Funders",
}

// FlattenPaper renders one record as a row of cell values aligned with
// Columns. Scalar fields pass through; sequence fields are joined into a
// bracketed, comma-separated string for single-cell display.
func FlattenPaper(p *types.PaperMetadata) []any {
	names := make([]string, len(p.Authors))
	sequences := make([]string, len(p.Authors))
	orcids := make([]string, len(p.Authors))
	var corresponding []string
	for i, a := range p.Authors {
		names[i] = a.Name
		sequences[i] = a.Sequence
		if a.ORCID != nil {
			orcids[i] = *a.ORCID
		}
		if a.IsCorresponding {
			corresponding = append(corresponding, a.Name)
		}
	}

	return []any{
		p.Identifier.DOI,
		p.Title,
		p.Abstract,
		len(p.Authors),
		bracketJoin(names),
		bracketJoin(sequences),
		bracketJoin(corresponding),
		bracketJoin(orcids),
		affiliationsCell(p.Authors),
		p.Journal.Name,
		p.Journal.Type,
		bracketJoin(p.Journal.ISSN),
		p.Publication.Date,
		p.Publication.Type,
		p.Publication.Citations,
		bracketJoin(p.SubjectAreas),
		p.References.Count,
		fundersCell(p.Funding),
	}
}

// bracketJoin renders a sequence as "[a, b, c]"; an empty sequence
// renders as the literal "[]".
func bracketJoin(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// affiliationsCell renders "Name: aff1, aff2" for each author that has
// affiliations; authors without any are omitted.
func affiliationsCell(authors []types.Author) string {
	var parts []string
	for _, a := range authors {
		if len(a.Affiliations) == 0 {
			continue
		}
		parts = append(parts, a.Name+": "+strings.Join(a.Affiliations, ", "))
	}
	return bracketJoin(parts)
}

// fundersCell renders "Funder (award1, award2)" per funding source, with
// "(no award info)" when the award list is empty.
func fundersCell(funding []types.Funder) string {
	parts := make([]string, len(funding))
	for i, f := range funding {
		awards := "no award info"
		if len(f.Awards) > 0 {
			awards = strings.Join(f.Awards, ", ")
		}
		parts[i] = f.Funder + " (" + awards + ")"
	}
	return bracketJoin(parts)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadDOIList reads a DOI list file: one DOI per row, first column when the
// file has multiple columns. Entries are whitespace-trimmed and blank
// entries are skipped.
func ReadDOIList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOI list %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing DOI list %s: %w", path, err)
	}

	dois := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		doi := strings.TrimSpace(record[0])
		if doi == "" {
			continue
		}
		dois = append(dois, doi)
	}
	return dois, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeListFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dois.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadDOIList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			"one per line",
			"10.1000/a\n10.1000/b\n",
			[]string{"10.1000/a", "10.1000/b"},
		},
		{
			"blank lines skipped",
			"10.1000/a\n\n10.1000/b\n\n",
			[]string{"10.1000/a", "10.1000/b"},
		},
		{
			"whitespace trimmed",
			"  10.1000/a  \n\t10.1000/b\n",
			[]string{"10.1000/a", "10.1000/b"},
		},
		{
			"first column of multi-column rows",
			"10.1000/a,Some Title,2009\n10.1000/b,Another,2010\n",
			[]string{"10.1000/a", "10.1000/b"},
		},
		{
			"whitespace-only entry skipped",
			"10.1000/a\n   \n10.1000/b\n",
			[]string{"10.1000/a", "10.1000/b"},
		},
		{
			"empty file",
			"",
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadDOIList(writeListFile(t, tt.content))
			if err != nil {
				t.Fatalf("ReadDOIList: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d DOIs %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("dois[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadDOIListMissingFile(t *testing.T) {
	_, err := ReadDOIList(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/transinfo/paperextractor/internal/crossref"
	"github.com/transinfo/paperextractor/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [doi]",
	Short: "Fetch and print the metadata record for a single DOI",
	Long: `Lookup retrieves one DOI from the CrossRef API and prints the normalized
record in a readable layout, or as JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	lookupCmd.Flags().String("email", "", "CrossRef contact email (default: config, CROSSREF_EMAIL, or .secrets/crossref-email)")
	lookupCmd.Flags().Bool("json", false, "output the record as JSON")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	email, _ := cmd.Flags().GetString("email")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		ContactEmail: contactEmail(email),
	}

	client := crossref.New(cfg)
	paper, err := client.Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(paper)
	}

	printPaper(os.Stdout, paper)
	return nil
}

// printPaper writes a structured plain-text view of one record.
func printPaper(w io.Writer, p *types.PaperMetadata) {
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(w, "Paper Information")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "DOI:   %s\n", p.Identifier.DOI)
	fmt.Fprintf(w, "URL:   %s\n", p.Identifier.URL)
	fmt.Fprintf(w, "Title: %s\n", orNotAvailable(p.Title))

	fmt.Fprintln(w, "\nAuthors:")
	if len(p.Authors) == 0 {
		fmt.Fprintln(w, "  No authors listed")
	}
	for _, a := range p.Authors {
		marker := ""
		if a.IsCorresponding {
			marker = " [Corresponding Author]"
		}
		fmt.Fprintf(w, "  %d. %s%s\n", a.Index, a.Name, marker)
		orcid := "Not available"
		if a.ORCID != nil {
			orcid = *a.ORCID
		}
		fmt.Fprintf(w, "     ORCID: %s\n", orcid)
		fmt.Fprintf(w, "     Sequence: %s\n", orNotAvailable(a.Sequence))
		for _, aff := range a.Affiliations {
			fmt.Fprintf(w, "     - %s\n", aff)
		}
	}

	fmt.Fprintln(w, "\nJournal:")
	fmt.Fprintf(w, "  Name: %s\n", orNotAvailable(p.Journal.Name))
	fmt.Fprintf(w, "  Type: %s\n", orNotAvailable(p.Journal.Type))
	fmt.Fprintf(w, "  ISSN: %s\n", orNotAvailable(strings.Join(p.Journal.ISSN, ", ")))

	fmt.Fprintln(w, "\nPublication:")
	fmt.Fprintf(w, "  Type: %s\n", orNotAvailable(p.Publication.Type))
	fmt.Fprintf(w, "  Date: %s\n", orNotAvailable(p.Publication.Date))
	fmt.Fprintf(w, "  Citation Count: %d\n", p.Publication.Citations)

	fmt.Fprintln(w, "\nSubject Areas:")
	if len(p.SubjectAreas) == 0 {
		fmt.Fprintln(w, "  No subject areas listed")
	}
	for _, s := range p.SubjectAreas {
		fmt.Fprintf(w, "  - %s\n", s)
	}

	fmt.Fprintln(w, "\nFunding:")
	if len(p.Funding) == 0 {
		fmt.Fprintln(w, "  No funding information available")
	}
	for _, f := range p.Funding {
		awards := "None listed"
		if len(f.Awards) > 0 {
			awards = strings.Join(f.Awards, ", ")
		}
		fmt.Fprintf(w, "  %s (awards: %s)\n", f.Funder, awards)
	}

	fmt.Fprintf(w, "\nReferences with DOIs: %d\n", p.References.Count)
	fmt.Fprintln(w, rule)
}

func orNotAvailable(s string) string {
	if s == "" {
		return "Not available"
	}
	return s
}

// Package main provides the bibman CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibman",
	Short: "LaTeX bibliography manager",
	Long: `bibman maintains a BibTeX database and keeps LaTeX documents in sync
with it.

Core features:
  - Generate a minimal .bib file from the citations in a tex document
  - Compile documents with latex or pdflatex, regenerating the bibliography
  - Merge .bib files into the database and export it back out
  - Full-text search over keys, titles and authors
  - Fetch records from NASA/ADS by query or bibcode

The database is git-versionable JSONL with an ephemeral SQLite cache for
queries. Listing commands output JSON by default for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

package main

import (
	"fmt"
	"strings"

	"github.com/mr91i/bibmanager/internal/bib"
	"github.com/spf13/cobra"
)

var exportKeys string

func init() {
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified keys (comma-separated)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export database entries as BibTeX",
	Long: `Export database entries as BibTeX on stdout.

Examples:
  bibman export
  bibman export --keys Perez1925,Slipher1913
  bibman export > all.bib`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	var entries []bib.Entry
	if exportKeys != "" {
		for _, key := range strings.Split(exportKeys, ",") {
			key = strings.TrimSpace(key)
			entry, ok := db.Get(key)
			if !ok {
				exitWithError(ExitError, "unknown key: %s", key)
			}
			entries = append(entries, entry)
		}
	} else {
		entries = db.Entries()
	}

	// BibTeX is always text output, never JSON
	fmt.Print(bib.Render(entries))
	return nil
}

package main

import (
	"strings"

	"github.com/mr91i/bibmanager/internal/bib"
	"github.com/mr91i/bibmanager/internal/storage"
	"github.com/spf13/cobra"
)

// DefaultSearchLimit caps search output when --limit is not given.
const DefaultSearchLimit = 50

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over keys, titles and authors",
	Long: `Search the database with SQLite FTS over citation keys, titles,
authors and years. The cache is rebuilt automatically when the database
has changed.

Examples:
  bibman search nebulae
  bibman search "Slipher 1913" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	cache, err := storage.OpenCache(db.Root(), db)
	if err != nil {
		return err
	}
	defer cache.Close()

	keys, err := cache.Search(strings.Join(args, " "), searchLimit)
	if err != nil {
		return err
	}

	var entries []bib.Entry
	for _, key := range keys {
		if entry, ok := db.Get(key); ok {
			entries = append(entries, entry)
		}
	}

	if humanOutput {
		for _, e := range entries {
			outputHuman("%s  %s (%d)\n", e.Key, truncate(e.Title, SearchTitleMaxLen), e.Year)
		}
		outputHuman("%d match(es)\n", len(entries))
		return nil
	}
	return outputJSON(entries)
}

// SearchTitleMaxLen truncates titles in human search output.
const SearchTitleMaxLen = 70

// truncate shortens s to max characters with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

package main

import (
	"github.com/mr91i/bibmanager/internal/bib"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <bibfile>",
	Short: "Merge a .bib file into the database",
	Long: `Parse a BibTeX file and fold its entries into the database. Entries
with new citation keys are appended; an existing key is replaced by the
incoming record.

Examples:
  bibman merge refs.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	entries, err := bib.ParseFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	added, updated := db.Merge(entries)
	if err := db.Save(); err != nil {
		return err
	}

	if humanOutput {
		outputHuman("Merged %s: %d added, %d updated (%d total)\n",
			args[0], added, updated, db.Len())
		return nil
	}
	return outputJSON(map[string]int{
		"added":   added,
		"updated": updated,
		"total":   db.Len(),
	})
}

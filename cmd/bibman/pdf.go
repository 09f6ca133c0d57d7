package main

import (
	"github.com/mr91i/bibmanager/internal/pdfmeta"
	"github.com/spf13/cobra"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "PDF utilities",
}

func init() {
	pdfCmd.AddCommand(pdfGuessCmd)
	rootCmd.AddCommand(pdfCmd)
}

var pdfGuessCmd = &cobra.Command{
	Use:   "guess <file.pdf>",
	Short: "Match a PDF to a database entry by its DOI",
	Long: `Scan the first pages of a PDF for a DOI and look it up in the
database.

Examples:
  bibman pdf guess ~/Downloads/slipher1913.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDFGuess,
}

func runPDFGuess(cmd *cobra.Command, args []string) error {
	doi, err := pdfmeta.ExtractDOI(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}
	if doi == "" {
		exitWithError(ExitError, "no DOI found in %s", args[0])
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	entry, ok := db.FindByDOI(doi)
	if !ok {
		if humanOutput {
			outputHuman("DOI %s is not in the database\n", doi)
			return nil
		}
		return outputJSON(map[string]string{"doi": doi})
	}

	if humanOutput {
		outputHuman("%s  %s\n", entry.Key, entry.Title)
		return nil
	}
	return outputJSON(entry)
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mr91i/bibmanager/internal/latex"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bibtexCmd)
}

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <texfile> [bibfile]",
	Short: "Generate a .bib file from the citations in a tex file",
	Long: `Generate a .bib file holding exactly the database entries a tex file
cites. Without an explicit bibfile the output name is taken from the
document's \bibliography declaration.

Keys that are not in the database are reported on stderr; the .bib file
is still written with the entries that were found.

Examples:
  bibman bibtex paper.tex
  bibman bibtex paper.tex refs.bib`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBibtex,
}

func runBibtex(cmd *cobra.Command, args []string) error {
	texfile := args[0]
	bibfile := ""
	if len(args) == 2 {
		bibfile = args[1]
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	res, err := latex.Build(texfile, bibfile, db)
	if err != nil {
		if errors.Is(err, latex.ErrNoBibliography) {
			exitWithError(ExitDataError, "%v", err)
		}
		return err
	}

	if len(res.Missing) > 0 {
		fmt.Fprintf(os.Stderr, "References not found:\n%s\n", strings.Join(res.Missing, "\n"))
	}

	if humanOutput {
		outputHuman("Wrote %d of %d references to %s\n",
			len(res.Entries), len(res.Keys), res.Bibfile)
		return nil
	}
	return outputJSON(res)
}

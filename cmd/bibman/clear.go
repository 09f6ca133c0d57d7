package main

import (
	"github.com/mr91i/bibmanager/internal/latex"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear <texfile>",
	Short: "Remove byproducts of previous latex compilations",
	Long: `Remove the files a previous compilation of the given tex file left
behind (.aux, .bbl, .log, .pdf and friends). Missing files are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return latex.ClearLatex(args[0])
	},
}

package main

import (
	"github.com/mr91i/bibmanager/internal/latex"
	"github.com/spf13/cobra"
)

var latexPaper string

func init() {
	latexCmd.Flags().StringVar(&latexPaper, "paper", "", "Page size for dvips (default from config, normally letter)")
	rootCmd.AddCommand(latexCmd)
	rootCmd.AddCommand(pdflatexCmd)
}

var latexCmd = &cobra.Command{
	Use:   "latex <texfile>",
	Short: "Compile a tex file with latex/bibtex/dvips/ps2pdf",
	Long: `Compile a tex file into a PDF through the classic latex chain:
regenerate the bibliography file, clear old compilation byproducts, run
latex, bibtex, latex, latex, then dvips piped into ps2pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: runLatex,
}

func runLatex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	paper := latexPaper
	if paper == "" {
		paper = cfg.Paper
	}

	return latex.CompileLatex(args[0], paper, db)
}

var pdflatexCmd = &cobra.Command{
	Use:   "pdflatex <texfile>",
	Short: "Compile a tex file with pdflatex",
	Long: `Compile a tex file into a PDF with pdflatex: clear old compilation
byproducts, then run pdflatex, bibtex, pdflatex, pdflatex.`,
	Args: cobra.ExactArgs(1),
	RunE: runPDFLatex,
}

func runPDFLatex(cmd *cobra.Command, args []string) error {
	return latex.CompilePDFLatex(args[0])
}

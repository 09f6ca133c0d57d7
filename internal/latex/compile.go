package latex

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/mr91i/bibmanager/internal/storage"
)

// CompileLatex compiles texfile to PDF through the classic
// latex/bibtex/dvips/ps2pdf chain, regenerating the bibliography file
// first. paper selects the page size passed to dvips (letter for
// ApJ-style documents, a4 for A&A).
func CompileLatex(texfile, paper string, db *storage.Database) error {
	dir, name, err := splitTexfile(texfile)
	if err != nil {
		return err
	}

	return inDir(dir, func() error {
		if _, err := Build(name+".tex", "", db); err != nil {
			return err
		}
		if err := ClearLatex(name); err != nil {
			return err
		}

		for _, args := range [][]string{
			{"latex", name},
			{"bibtex", name},
			{"latex", name},
			{"latex", name},
		} {
			if err := run(args[0], args[1:]...); err != nil {
				return err
			}
		}

		// Piping dvips straight into ps2pdf avoids an intermediate .ps
		// file on disk.
		pipeline := fmt.Sprintf(
			"dvips -R0 -P pdf -t %s -f %s | "+
				"ps2pdf -dCompatibilityLevel=1.3 -dEmbedAllFonts=true "+
				"-dMaxSubsetPct=100 -dSubsetFonts=true - - > %s.pdf",
			paper, name, name)
		return run("sh", "-c", pipeline)
	})
}

// CompilePDFLatex compiles texfile to PDF with pdflatex, running the
// usual pdflatex/bibtex/pdflatex/pdflatex sequence after clearing old
// byproducts.
func CompilePDFLatex(texfile string) error {
	dir, name, err := splitTexfile(texfile)
	if err != nil {
		return err
	}

	return inDir(dir, func() error {
		if err := ClearLatex(name); err != nil {
			return err
		}

		for _, args := range [][]string{
			{"pdflatex", name},
			{"bibtex", name},
			{"pdflatex", name},
			{"pdflatex", name},
		} {
			if err := run(args[0], args[1:]...); err != nil {
				return err
			}
		}
		return nil
	})
}

// run executes one compiler invocation, surfacing its output directly.
// A nonzero exit status is not an error: latex and bibtex routinely exit
// nonzero on warnings that later passes resolve.
func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

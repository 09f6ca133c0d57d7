package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// byproducts lists the compilation outputs removed before a fresh run.
// Each is appended to the tex file name without its extension.
var byproducts = []string{
	".bbl", ".blg", ".out", ".dvi",
	".log", ".aux", ".lof", ".lot",
	".toc", ".ps", ".pdf", "Notes.bib",
}

// ClearLatex removes the byproducts of previous compilations of texfile.
// Files that do not exist are skipped; any other removal failure aborts.
func ClearLatex(texfile string) error {
	base := strings.TrimSuffix(texfile, filepath.Ext(texfile))
	for _, suffix := range byproducts {
		name := base + suffix
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}

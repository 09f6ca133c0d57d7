package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// inDir runs fn with dir as the working directory, restoring the
// previous one afterwards.
func inDir(dir string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering %s: %w", dir, err)
	}
	defer os.Chdir(prev)
	return fn()
}

// splitTexfile resolves texfile to its directory and its base name
// without the .tex extension.
func splitTexfile(texfile string) (dir, name string, err error) {
	abs, err := filepath.Abs(texfile)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", texfile, err)
	}
	dir = filepath.Dir(abs)
	base := filepath.Base(abs)
	name = strings.TrimSuffix(base, filepath.Ext(base))
	return dir, name, nil
}

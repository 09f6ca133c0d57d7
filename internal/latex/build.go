package latex

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mr91i/bibmanager/internal/bib"
	"github.com/mr91i/bibmanager/internal/storage"
)

// ErrNoBibliography reports a tex file that has no \bibliography
// declaration when no explicit output name was supplied. There is no
// safe default filename, so the build stops before any export.
var ErrNoBibliography = errors.New(`no \bibliography call found in tex file`)

// bibliographyRe captures the argument of a \bibliography declaration.
var bibliographyRe = regexp.MustCompile(`\\bibliography\{([^}]+)`)

// BuildResult describes one bibliography build.
type BuildResult struct {
	Bibfile string      `json:"bibfile"`
	Keys    []string    `json:"keys"`
	Missing []string    `json:"missing,omitempty"`
	Entries []bib.Entry `json:"-"`
}

// Build generates a .bib file for texfile from the entries in db. When
// bibfile is empty the output name is derived from the document's
// \bibliography declaration plus the ".bib" extension. Cited keys with
// no matching database entry are reported in the result rather than
// failing the build; the exported file holds whatever was found.
func Build(texfile, bibfile string, db *storage.Database) (*BuildResult, error) {
	data, err := os.ReadFile(texfile)
	if err != nil {
		return nil, fmt.Errorf("reading tex file: %w", err)
	}
	tex := NoComments(string(data))

	if bibfile == "" {
		m := bibliographyRe.FindStringSubmatch(tex)
		if m == nil {
			return nil, ErrNoBibliography
		}
		bibfile = strings.TrimSpace(m[1]) + ".bib"
	}

	res := &BuildResult{
		Bibfile: bibfile,
		Keys:    UniqueKeys(tex),
	}
	for _, key := range res.Keys {
		if entry, ok := db.Get(key); ok {
			res.Entries = append(res.Entries, entry)
		} else {
			res.Missing = append(res.Missing, key)
		}
	}

	if err := db.Export(res.Entries, bibfile); err != nil {
		return nil, fmt.Errorf("exporting %s: %w", bibfile, err)
	}
	return res, nil
}

// UniqueKeys returns the deduplicated citation keys of tex, sorted
// lexicographically. Empty keys (from trailing commas and the like) are
// dropped.
func UniqueKeys(tex string) []string {
	seen := make(map[string]bool)
	var keys []string
	for key := range Citations(tex) {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

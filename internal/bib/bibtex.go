package bib

import (
	"fmt"
	"os"
	"strings"
)

// BibTeX returns the serialized BibTeX record for an entry. The raw
// content captured at parse time wins; entries assembled from metadata
// alone are rendered field by field.
func (e Entry) BibTeX() string {
	if e.Content != "" {
		return strings.TrimRight(e.Content, "\n") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", e.Key)
	if e.Authors != "" {
		fmt.Fprintf(&b, "  author = {%s},\n", e.Authors)
	}
	if e.Title != "" {
		fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(e.Title))
	}
	if e.Year > 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", e.Year)
	}
	if e.Month > 0 {
		fmt.Fprintf(&b, "  month = {%d},\n", e.Month)
	}
	if e.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", e.DOI)
	}
	if e.ADSURL != "" {
		fmt.Fprintf(&b, "  adsurl = {%s},\n", e.ADSURL)
	}
	b.WriteString("}\n")
	return b.String()
}

// Render converts entries to a single BibTeX document.
func Render(entries []Entry) string {
	var parts []string
	for _, e := range entries {
		parts = append(parts, e.BibTeX())
	}
	return strings.Join(parts, "\n")
}

// WriteFile writes entries as a BibTeX file at path, replacing any
// existing content.
func WriteFile(path string, entries []Entry) error {
	if err := os.WriteFile(path, []byte(Render(entries)), 0644); err != nil {
		return fmt.Errorf("writing bib file: %w", err)
	}
	return nil
}

// escapeLatex escapes special LaTeX characters in field values.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might
	// produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

// Package bib defines bibliographic entries and their BibTeX
// representation.
package bib

// Entry is one bibliographic record, uniquely keyed within a database by
// its citation key.
type Entry struct {
	Key     string   `json:"key"`
	Title   string   `json:"title,omitempty"`
	Authors string   `json:"authors,omitempty"` // raw BibTeX author field
	Year    int      `json:"year,omitempty"`
	Month   int      `json:"month,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	Bibcode string   `json:"bibcode,omitempty"` // ADS identifier
	ADSURL  string   `json:"adsurl,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Content string   `json:"content,omitempty"` // raw BibTeX record as parsed
}

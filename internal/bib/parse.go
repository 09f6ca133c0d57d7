package bib

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// entryStartRe matches the head of a BibTeX record: @type{key,
var entryStartRe = regexp.MustCompile(`@(\w+)\s*\{\s*([^,\s{}]+)\s*,`)

// Parse reads BibTeX text into entries. Text between records is skipped,
// as are @comment, @string and @preamble blocks. The raw record text is
// kept on each entry so round-tripping preserves fields this parser does
// not model.
func Parse(text string) ([]Entry, error) {
	var entries []Entry

	for i := 0; i < len(text); {
		loc := entryStartRe.FindStringSubmatchIndex(text[i:])
		if loc == nil {
			break
		}
		kind := strings.ToLower(text[i+loc[2] : i+loc[3]])
		key := text[i+loc[4] : i+loc[5]]

		open := i + loc[0] + strings.IndexByte(text[i+loc[0]:i+loc[1]], '{')
		end, ok := matchBrace(text, open)
		if !ok {
			return nil, fmt.Errorf("unterminated BibTeX entry %q", key)
		}

		if kind != "comment" && kind != "string" && kind != "preamble" {
			entries = append(entries, entryFromRecord(key, text[i+loc[0]:end+1]))
		}
		i = end + 1
	}

	return entries, nil
}

// ParseFile reads a .bib file into entries.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bib file: %w", err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// matchBrace returns the index of the unescaped brace closing the one at
// open.
func matchBrace(text string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		if i > 0 && text[i-1] == '\\' {
			continue
		}
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// entryFromRecord fills an Entry's metadata fields from the raw record.
// Fields this parser does not recognize survive in Content.
func entryFromRecord(key, record string) Entry {
	e := Entry{
		Key:     key,
		Title:   fieldValue(record, "title"),
		Authors: fieldValue(record, "author"),
		DOI:     fieldValue(record, "doi"),
		Bibcode: fieldValue(record, "bibcode"),
		ADSURL:  fieldValue(record, "adsurl"),
		Content: record,
	}
	if year := fieldValue(record, "year"); year != "" {
		e.Year, _ = strconv.Atoi(year)
	}
	if month := fieldValue(record, "month"); month != "" {
		e.Month, _ = strconv.Atoi(month)
	}
	return e
}

// fieldValue extracts one field value from a record. Values may be brace
// or quote delimited; a bare value runs to the end of the line. Only
// single-line values are extracted, which covers the records ADS and
// common reference managers emit; anything else survives untouched in
// Content.
func fieldValue(record, name string) string {
	re := fieldRes[name]
	if re == nil {
		re = regexp.MustCompile(`(?im)^\s*` + name + `\s*=\s*(.+?),?\s*$`)
	}
	m := re.FindStringSubmatch(record)
	if m == nil {
		return ""
	}

	value := strings.TrimSpace(m[1])
	if n := len(value); n >= 2 {
		// Strip one delimiter pair, leaving inner grouping braces alone.
		if (value[0] == '{' && value[n-1] == '}') || (value[0] == '"' && value[n-1] == '"') {
			value = value[1 : n-1]
		}
	}
	return strings.TrimSpace(value)
}

// fieldRes pre-compiles the patterns for the fields looked up on every
// parsed record.
var fieldRes = map[string]*regexp.Regexp{}

func init() {
	for _, name := range []string{"title", "author", "doi", "bibcode", "adsurl", "year", "month"} {
		fieldRes[name] = regexp.MustCompile(`(?im)^\s*` + name + `\s*=\s*(.+?),?\s*$`)
	}
}

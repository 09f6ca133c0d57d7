package latex

import (
	"iter"
	"strings"
)

// Citation command grammar. The bare family takes no capitalization or
// star; the natbib family is the stem "cite" (or "Cite") plus one of the
// suffixes below, optionally starred.
var (
	bareCommands = []string{"defcitealias", "nocite", "cite"}

	// Longest first, so \citeyearpar is not read as \citeyear followed
	// by stray text.
	citeSuffixes = []string{"yearpar", "author", "year", "alp", "alt", "p", "t"}
)

// citeMatch is one parsed citation command.
type citeMatch struct {
	pre  string // content of the first optional bracket argument
	post string // content of the second optional bracket argument
	keys string // content of the mandatory brace argument
	end  int    // index just past the brace content
}

// Citations returns an iterator over every citation key referenced in
// text, in document order. Keys cited inside the optional bracket
// arguments of another citation command are yielded before the keys of
// the enclosing command. Keys are trimmed of surrounding whitespace but
// not deduplicated; the same key is yielded once per appearance.
//
// The iterator is restartable: ranging over it again rescans text from
// the start and yields the identical sequence.
func Citations(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanCitations(text, yield)
	}
}

// scanCitations walks text looking for citation commands, recursing into
// the bracket arguments of each match. Bracket content is strictly
// shorter than the enclosing match, so the recursion terminates. Returns
// false when yield stopped the iteration.
func scanCitations(text string, yield func(string) bool) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' {
			continue
		}
		m, ok := matchCitation(text, i+1)
		if !ok {
			continue
		}
		if !scanCitations(m.pre, yield) || !scanCitations(m.post, yield) {
			return false
		}
		for _, key := range strings.Split(m.keys, ",") {
			if !yield(strings.TrimSpace(key)) {
				return false
			}
		}
		i = m.end - 1
	}
	return true
}

// matchCitation tries to read one citation command starting at pos, which
// points just past a backslash. A match needs a recognized command name,
// then zero, one or two bracket arguments, then an opening brace with at
// least one non-brace character, with insignificant whitespace between
// the parts. Anything else is not a citation and is skipped silently.
func matchCitation(text string, pos int) (citeMatch, bool) {
	var m citeMatch

	i, ok := matchCommandName(text, pos)
	if !ok {
		return m, false
	}

	i = skipSpace(text, i)
	m.pre, i = matchBracket(text, i)
	i = skipSpace(text, i)
	m.post, i = matchBracket(text, i)
	i = skipSpace(text, i)

	if i >= len(text) || text[i] != '{' {
		return m, false
	}
	start := i + 1
	end := start
	for end < len(text) && text[end] != '}' {
		end++
	}
	if end == start {
		return m, false // empty braces never match
	}

	m.keys = text[start:end]
	m.end = end
	return m, true
}

// matchCommandName matches a citation command name at pos and returns the
// index just past it. The natbib family is tried first: an optionally
// capitalized "cite" stem, a suffix and an optional star. The bare
// commands are lowercase only and take no star; a capitalized stem
// without a suffix is not a citation command.
func matchCommandName(text string, pos int) (int, bool) {
	rest := text[pos:]

	if strings.HasPrefix(rest, "cite") || strings.HasPrefix(rest, "Cite") {
		after := rest[4:]
		for _, suffix := range citeSuffixes {
			if !strings.HasPrefix(after, suffix) {
				continue
			}
			i := pos + 4 + len(suffix)
			if i < len(text) && text[i] == '*' {
				i++
			}
			return i, true
		}
	}

	for _, name := range bareCommands {
		if strings.HasPrefix(rest, name) {
			return pos + len(name), true
		}
	}

	return pos, false
}

// matchBracket reads one [...] argument at i and returns its content and
// the index just past the closing bracket. The span ends at the first
// unescaped ']'; a nested '[' is not balanced, so one level of bracket
// content per argument is the supported depth. When i is not a bracket
// argument the position is returned unchanged.
func matchBracket(text string, i int) (string, int) {
	if i >= len(text) || text[i] != '[' {
		return "", i
	}
	for j := i + 1; j < len(text); j++ {
		if text[j] == ']' && text[j-1] != '\\' {
			return text[i+1 : j], j + 1
		}
	}
	return "", i // unterminated bracket: not an argument
}

// skipSpace advances i past whitespace, newlines included.
func skipSpace(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			i++
		default:
			return i
		}
	}
	return i
}

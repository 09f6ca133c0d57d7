// Package latex implements the LaTeX side of bibliography management:
// comment stripping, citation extraction, .bib generation and the
// latex/pdflatex compilation pipelines.
package latex

import "strings"

// NoComments removes LaTeX comments from text. A comment starts at a '%'
// that is not immediately preceded by a backslash and runs to the end of
// the line. The line break itself is kept, so a comment-only line becomes
// an empty line and line numbering is unaffected.
func NoComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inComment := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			inComment = false
			b.WriteByte(c)
			continue
		}
		if inComment {
			continue
		}
		if c == '%' && (i == 0 || text[i-1] != '\\') {
			inComment = true
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

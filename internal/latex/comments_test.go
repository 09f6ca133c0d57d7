package latex

import (
	"strings"
	"testing"
)

func TestNoComments_RemovesCommentLines(t *testing.T) {
	text := "Hello, this is dog.\n" +
		"% This is a comment line.\n" +
		"This line ends with a comment. % A comment\n" +
		`However, this is a percentage \%, not a comment.` + "\n" +
		"OK, byee."

	got := NoComments(text)

	if strings.Contains(got, "comment line") {
		t.Errorf("NoComments() kept a full-line comment:\n%s", got)
	}
	if strings.Contains(got, "A comment") {
		t.Errorf("NoComments() kept a trailing comment:\n%s", got)
	}
	if !strings.Contains(got, "This line ends with a comment. ") {
		t.Errorf("NoComments() should keep text before the %% sign:\n%s", got)
	}
}

func TestNoComments_KeepsEscapedPercent(t *testing.T) {
	text := `A percentage \% is not a comment marker.`

	got := NoComments(text)

	if got != text {
		t.Errorf("NoComments(%q) = %q, want unchanged", text, got)
	}
}

func TestNoComments_EscapedPercentThenComment(t *testing.T) {
	text := `50\% of the sample % but not this part`

	got := NoComments(text)

	want := `50\% of the sample `
	if got != want {
		t.Errorf("NoComments(%q) = %q, want %q", text, got, want)
	}
}

func TestNoComments_PreservesLineCount(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"comment only line", "before\n% gone\nafter\n"},
		{"trailing comments", "a % x\nb % y\nc\n"},
		{"no comments", "a\nb\nc\n"},
		{"escaped percents", "a \\% b\n% c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NoComments(tt.text)
			if strings.Count(got, "\n") != strings.Count(tt.text, "\n") {
				t.Errorf("NoComments() changed line count: %q -> %q", tt.text, got)
			}
		})
	}
}

func TestNoComments_CommentOnlyLineBecomesEmpty(t *testing.T) {
	got := NoComments("% whole line\nnext")

	want := "\nnext"
	if got != want {
		t.Errorf("NoComments() = %q, want %q", got, want)
	}
}

func TestNoComments_PercentAtLineStart(t *testing.T) {
	// A '%' right after a newline starts a comment even though the
	// preceding byte is not inspectable as "line content".
	got := NoComments("keep\n%drop\nkeep")

	want := "keep\n\nkeep"
	if got != want {
		t.Errorf("NoComments() = %q, want %q", got, want)
	}
}

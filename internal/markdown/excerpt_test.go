package markdown

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	body := "# Heading\n\nFirst paragraph line.\nSecond line.\n\n```go\nfmt.Println(\"skip me\")\n```\n\nAfter the code."
	got := PlainText(body)

	if strings.Contains(got, "skip me") {
		t.Errorf("code block content leaked into plain text: %q", got)
	}
	for _, want := range []string{"Heading", "First paragraph line.", "Second line.", "After the code."} {
		if !strings.Contains(got, want) {
			t.Errorf("plain text missing %q: %q", want, got)
		}
	}
}

func TestExcerpt(t *testing.T) {
	short := "A short post."
	if got := Excerpt(short, 200); got != short {
		t.Errorf("short body should pass through: got %q", got)
	}

	long := strings.Repeat("word ", 100)
	got := Excerpt(long, 40)
	if len([]rune(got)) > 41 { // 40 plus the ellipsis
		t.Errorf("excerpt too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated excerpt should end with ellipsis: %q", got)
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "…"), " ") {
		t.Errorf("excerpt should not end with a space before the ellipsis: %q", got)
	}
}

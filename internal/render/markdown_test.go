package render

import (
	"strings"
	"testing"

	"plume/internal/theme"
)

func TestMarkdown(t *testing.T) {
	out := Markdown("# Title\n\nSome *emphasis* here.", theme.Dark, 60)
	if out == "" {
		t.Fatal("rendered output should not be empty")
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("heading text missing from output: %q", out)
	}
}

func TestMarkdownEmptyBody(t *testing.T) {
	if out := Markdown("   \n  ", theme.Light, 60); out != "" {
		t.Errorf("blank body should render empty, got %q", out)
	}
}

func TestMarkdownRendererReuse(t *testing.T) {
	// Two renders with the same mode and width must not build two renderers.
	Markdown("one", theme.Dark, 42)
	rendererMu.Lock()
	before := len(renderers)
	rendererMu.Unlock()

	Markdown("two", theme.Dark, 42)
	rendererMu.Lock()
	after := len(renderers)
	rendererMu.Unlock()

	if after != before {
		t.Errorf("renderer cache grew from %d to %d on a repeated key", before, after)
	}
}

func TestPlain(t *testing.T) {
	got := Plain("a <b> c\nnext > line")
	want := "a &lt;b&gt; c\nnext &gt; line"
	if got != want {
		t.Errorf("Plain = %q, want %q", got, want)
	}
}

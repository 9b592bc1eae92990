package markdown

import (
	"reflect"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMeta map[string]string
		wantTags []string
		wantBody string
	}{
		{
			name:     "no delimiters",
			input:    "no delimiters here",
			wantMeta: map[string]string{},
			wantBody: "no delimiters here",
		},
		{
			name:     "basic block",
			input:    "---\ntitle: Hello\ntags: [a, b]\n---\nBody text",
			wantMeta: map[string]string{"title": "Hello", "tags": "[a, b]"},
			wantTags: []string{"a", "b"},
			wantBody: "Body text",
		},
		{
			name:     "unclosed block is all body",
			input:    "---\ntitle: Unclosed\n",
			wantMeta: map[string]string{},
			wantBody: "---\ntitle: Unclosed\n",
		},
		{
			name:     "delimiter must be the whole line",
			input:    "--- \ntitle: Nope\n---\nbody",
			wantMeta: map[string]string{},
			wantBody: "--- \ntitle: Nope\n---\nbody",
		},
		{
			name:     "quoted values lose one layer",
			input:    "---\ntitle: \"Quoted\"\ncategory: 'notes'\n---\nbody",
			wantMeta: map[string]string{"title": "Quoted", "category": "notes"},
			wantBody: "body",
		},
		{
			name:     "only the outer quote layer is stripped",
			input:    "---\ntitle: \"\"double\"\"\n---\nbody",
			wantMeta: map[string]string{"title": "\"double\""},
			wantBody: "body",
		},
		{
			name:     "lines without a colon are skipped",
			input:    "---\njust some text\ntitle: Kept\n: leading colon\n---\nbody",
			wantMeta: map[string]string{"title": "Kept"},
			wantBody: "body",
		},
		{
			name:     "last write wins",
			input:    "---\ntitle: First\ntitle: Second\n---\nbody",
			wantMeta: map[string]string{"title": "Second"},
			wantBody: "body",
		},
		{
			name:     "strict json tags",
			input:    "---\ntags: [\"go\", \"tui\"]\n---\nbody",
			wantMeta: map[string]string{"tags": "[\"go\", \"tui\"]"},
			wantTags: []string{"go", "tui"},
			wantBody: "body",
		},
		{
			name:     "malformed tags fall back to comma split",
			input:    "---\ntags: [go, 'tui', \"terminal\"]\n---\nbody",
			wantMeta: map[string]string{"tags": "[go, 'tui', \"terminal\"]"},
			wantTags: []string{"go", "tui", "terminal"},
			wantBody: "body",
		},
		{
			name:     "empty tags array",
			input:    "---\ntags: []\n---\nbody",
			wantMeta: map[string]string{"tags": "[]"},
			wantTags: []string{},
			wantBody: "body",
		},
		{
			name:     "unbracketed tags stay a plain string",
			input:    "---\ntags: go, tui\n---\nbody",
			wantMeta: map[string]string{"tags": "go, tui"},
			wantBody: "body",
		},
		{
			name:     "body keeps everything after the close",
			input:    "---\ntitle: T\n---\nline one\n\nline two",
			wantMeta: map[string]string{"title": "T"},
			wantBody: "line one\n\nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFrontMatter(tt.input)
			if !reflect.DeepEqual(got.Meta, tt.wantMeta) {
				t.Errorf("meta: got %v, want %v", got.Meta, tt.wantMeta)
			}
			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("tags: got %#v, want %#v", got.Tags, tt.wantTags)
			}
			if got.Body != tt.wantBody {
				t.Errorf("body: got %q, want %q", got.Body, tt.wantBody)
			}
		})
	}
}

func TestParseFrontMatterCRLF(t *testing.T) {
	got := ParseFrontMatter("---\r\ntitle: Windows\r\n---\r\nbody")
	if got.Meta["title"] != "Windows" {
		t.Errorf("title: got %q, want %q", got.Meta["title"], "Windows")
	}
	if got.Body != "body" {
		t.Errorf("body: got %q, want %q", got.Body, "body")
	}
}

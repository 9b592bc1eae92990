package markdown

import (
	"encoding/json"
	"strings"
)

// Document is a raw post split into its front matter and body.
type Document struct {
	// Meta holds every key: value line from the front matter block, after
	// unquoting. Last write wins for repeated keys.
	Meta map[string]string
	// Tags is the parsed form of the "tags" key, when it carried a
	// bracketed list. Nil otherwise.
	Tags []string
	// Body is everything after the closing delimiter. When no front matter
	// block is present, Body is the whole input, unchanged.
	Body string
}

// ParseFrontMatter splits a raw document into metadata and body.
//
// A front matter block exists only when the document starts with a line that
// is exactly "---", followed by metadata lines, followed by another "---"
// line. Anything else (including an unclosed block) means the whole input is
// body. Malformed metadata lines are skipped, never an error.
func ParseFrontMatter(raw string) Document {
	doc := Document{Meta: map[string]string{}, Body: raw}

	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return doc
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return doc
	}

	for _, line := range lines[1:end] {
		// The colon must appear past position 0 so ":value" lines don't
		// produce an empty key.
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := unquote(strings.TrimSpace(line[idx+1:]))

		doc.Meta[key] = val
		if key == "tags" {
			doc.Tags = parseTagList(val)
		}
	}

	doc.Body = strings.Join(lines[end+1:], "\n")
	return doc
}

// unquote strips exactly one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseTagList parses a bracketed tag list. A strict JSON array is tried
// first; if that fails the brackets are stripped and the inner text is split
// on commas with one quote layer removed per element. The two paths behave
// differently on malformed input (e.g. unquoted elements) and both are kept.
func parseTagList(val string) []string {
	if !strings.HasPrefix(val, "[") || !strings.HasSuffix(val, "]") {
		return nil
	}

	var strict []string
	if err := json.Unmarshal([]byte(val), &strict); err == nil {
		return strict
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(val, "["), "]")
	var tags []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if len(part) > 0 && (part[0] == '"' || part[0] == '\'') {
			part = part[1:]
		}
		if len(part) > 0 && (part[len(part)-1] == '"' || part[len(part)-1] == '\'') {
			part = part[:len(part)-1]
		}
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

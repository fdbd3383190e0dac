package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// MaxSuggestions is the most reply suggestions ever returned.
const MaxSuggestions = 4

// enumerationPrefix matches list markers a model puts before each suggestion:
// "1.", "2)", "- ", "* ", leading quotes.
var enumerationPrefix = regexp.MustCompile(`^[0-9."'\-*)\s]*`)

// ExtractSuggestions recovers up to MaxSuggestions strings from a model answer.
// It first tries the substring between the first '[' and the last ']' as a
// JSON string array, then falls back to one suggestion per non-empty line.
// A lone line without a list marker is prose, not a list, and yields nothing.
// It returns nil when nothing usable is found.
func ExtractSuggestions(content string) []string {
	if items, ok := extractJSONArray(content); ok {
		return limit(items)
	}
	return limit(extractLines(content))
}

func extractJSONArray(content string) ([]string, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var raw []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, false
	}

	items := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	return items, true
}

func extractLines(content string) []string {
	var items []string
	marked := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsAny(line, "{}[]") {
			continue
		}
		stripped := strings.TrimSpace(enumerationPrefix.ReplaceAllString(line, ""))
		if stripped != line {
			marked = true
		}
		stripped = strings.TrimRight(stripped, `",`)
		if stripped != "" {
			items = append(items, stripped)
		}
	}
	if len(items) == 1 && !marked {
		return nil
	}
	return items
}

func limit(items []string) []string {
	if len(items) > MaxSuggestions {
		return items[:MaxSuggestions]
	}
	return items
}

package utils

import (
	"regexp"
)

// Default reasoning-trace markers emitted by models such as DeepSeek-R1 and
// some Groq-hosted models.
const (
	DefaultTraceOpen  = "<think>"
	DefaultTraceClose = "</think>"
)

// TraceStripper removes a model's reasoning trace from an answer before it is
// shown to the reader.
type TraceStripper struct {
	pattern *regexp.Regexp
}

// NewTraceStripper builds a stripper for the given marker pair.
// Markers are matched literally.
func NewTraceStripper(open, close string) *TraceStripper {
	expr := "(?s)" + regexp.QuoteMeta(open) + ".*?" + regexp.QuoteMeta(close) + "(?:\n\n)?"
	return &TraceStripper{pattern: regexp.MustCompile(expr)}
}

// DefaultTraceStripper strips <think>...</think> blocks.
func DefaultTraceStripper() *TraceStripper {
	return NewTraceStripper(DefaultTraceOpen, DefaultTraceClose)
}

// Strip removes the first open...close block and at most one blank line
// directly after it. Text without a complete block is returned unchanged.
func (s *TraceStripper) Strip(text string) string {
	loc := s.pattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + text[loc[1]:]
}

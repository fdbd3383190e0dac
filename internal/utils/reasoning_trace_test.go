package utils

import "testing"

func TestTraceStripper_Strip(t *testing.T) {
	s := DefaultTraceStripper()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "block with blank line",
			input: "<think>ignore</think>\n\nKept text",
			want:  "Kept text",
		},
		{
			name:  "no block",
			input: "Plain answer",
			want:  "Plain answer",
		},
		{
			name:  "block without trailing blank line",
			input: "<think>x</think>Answer",
			want:  "Answer",
		},
		{
			name:  "multiline trace",
			input: "<think>\nstep 1\nstep 2\n</think>\n\nResult",
			want:  "Result",
		},
		{
			name:  "only one blank line removed",
			input: "<think>x</think>\n\n\n\nResult",
			want:  "\n\nResult",
		},
		{
			name:  "only first block removed",
			input: "<think>a</think>\n\nOne <think>b</think>\n\nTwo",
			want:  "One <think>b</think>\n\nTwo",
		},
		{
			name:  "unterminated block left alone",
			input: "<think>never closed",
			want:  "<think>never closed",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Strip(tt.input); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTraceStripper_Idempotent(t *testing.T) {
	s := DefaultTraceStripper()
	input := "<think>ignore</think>\n\nKept text"

	once := s.Strip(input)
	twice := s.Strip(once)
	if once != twice {
		t.Errorf("Strip not idempotent: %q then %q", once, twice)
	}
}

func TestTraceStripper_CustomMarkers(t *testing.T) {
	s := NewTraceStripper("[[", "]]")

	got := s.Strip("[[a.b*c]]\n\nvisible")
	if got != "visible" {
		t.Errorf("Strip() = %q, want %q", got, "visible")
	}
}

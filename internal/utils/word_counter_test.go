package utils

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"The quick brown fox", 4},
		{"line one\nline two\ttabbed", 5},
		{"wait - what ...", 2},
		{"मेरा नाम राम है", 4},
		{"3 apples", 2},
	}

	for _, tt := range tests {
		if got := CountWords(tt.input); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

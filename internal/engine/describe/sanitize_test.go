package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain ascii untouched",
			input:    "A career in software engineering.",
			expected: "A career in software engineering.",
		},
		{
			name:     "smart quotes replaced",
			input:    "You’ll thrive in “creative” roles",
			expected: `You'll thrive in "creative" roles`,
		},
		{
			name:     "dashes and ellipsis replaced",
			input:    "Design – build — ship…",
			expected: "Design - build -- ship...",
		},
		{
			name:     "whitespace runs collapsed",
			input:    "great fit   for\n\tyou",
			expected: "great fit for you",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  inspiring text  ",
			expected: "inspiring text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}

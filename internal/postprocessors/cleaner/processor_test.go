package cleaner

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "cleaner", New().Name())
}

func TestProcessor_Process(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normalises windows line endings",
			input:    "eredi:\r\n1. Maria\r\n2. Paolo",
			expected: "eredi:\n1. Maria\n2. Paolo",
		},
		{
			name:     "normalises bare carriage returns",
			input:    "eredi:\r1. Maria",
			expected: "eredi:\n1. Maria",
		},
		{
			name:     "strips byte order mark",
			input:    "\uFEFFTestamento",
			expected: "Testamento",
		},
		{
			name:     "drops control characters but keeps tabs",
			input:    "Maria\tRossi\x00\x07",
			expected: "Maria\tRossi",
		},
		{
			name:     "collapses blank line runs",
			input:    "first\n\n\n\n\nsecond",
			expected: "first\n\nsecond",
		},
		{
			name:     "trims trailing whitespace per line",
			input:    "first   \nsecond\t\t",
			expected: "first\nsecond",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "\n\n  text  \n\n",
			expected: "text",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().Process(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestProcessor_MaxChars(t *testing.T) {
	t.Run("caps long text", func(t *testing.T) {
		p := New(WithMaxChars(10))

		result, err := p.Process(context.Background(), strings.Repeat("a", 100))

		require.NoError(t, err)
		assert.Len(t, result, 10)
	})

	t.Run("cuts on a rune boundary", func(t *testing.T) {
		p := New(WithMaxChars(5))

		// "èèè" is six bytes; a five byte cut must not split a rune.
		result, err := p.Process(context.Background(), "èèè")

		require.NoError(t, err)
		assert.Equal(t, "èè", result)
	})

	t.Run("zero disables the cap", func(t *testing.T) {
		p := New(WithMaxChars(0))

		long := strings.Repeat("a", DefaultMaxChars+1000)
		result, err := p.Process(context.Background(), long)

		require.NoError(t, err)
		assert.Len(t, result, len(long))
	})
}

package commands

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short string untouched", "Apple", 28, "Apple"},
		{"exact length untouched", "abcdef", 6, "abcdef"},
		{"ascii truncated", "abcdefgh", 6, "abcde…"},
		{"multi-byte name truncated on runes", "Société Générale", 10, "Société G…"},
		{"multi-byte name within limit", "Nestlé", 10, "Nestlé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

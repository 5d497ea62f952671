package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocketsCompatible(t *testing.T) {
	tests := []struct {
		name      string
		required  string
		candidate string
		want      bool
	}{
		{"identical", "AM5", "AM5", true},
		{"socket prefix stripped", "Socket AM5", "am5", true},
		{"am4 vs am5", "AM4", "AM5", false},
		{"am5 with suffix", "AM5", "AM5 (B650)", true},
		{"digits inside vendor name", "1700", "LGA1700 (13th/14th Gen)", true},
		{"reverse containment", "LGA1700 (13th/14th Gen)", "1700", true},
		{"strict 1851 both sides", "Socket 1851", "LGA1851", true},
		{"strict 1851 requirement", "1851", "1700", false},
		{"strict 1851 candidate", "LGA1700", "LGA1851", false},
		{"unrelated", "LGA1200", "AM4", false},
		{"empty requirement", "", "AM5", false},
		{"empty candidate", "AM5", "", false},
		{"only socket word", "Socket", "AM5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SocketsCompatible(tt.required, tt.candidate))
		})
	}
}

func TestSocketsCompatible_StrictOnlyMatchesStrict(t *testing.T) {
	candidates := []string{"LGA1700", "AM5", "AM4", "1200", "LGA1851", "Socket 1851", "LGA 1851 (Arrow Lake)"}
	for _, c := range candidates {
		got := SocketsCompatible("1851", c)
		want := NormalizeSocket(c) != "" && containsToken(NormalizeSocket(c), "1851")
		assert.Equal(t, want, got, "candidate %q", c)
	}
}

func containsToken(s, token string) bool {
	for i := 0; i+len(token) <= len(s); i++ {
		if s[i:i+len(token)] == token {
			return true
		}
	}
	return false
}

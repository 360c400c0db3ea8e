package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ten Days in Ladakh", "ten-days-in-ladakh"},
		{"  Trip'O'Nation: Goa & Beyond!  ", "trip-o-nation-goa-beyond"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER CASE", "upper-case"},
		{"trailing punctuation?!", "trailing-punctuation"},
		{"---", ""},
		{"", ""},
		{"2026 travel guide", "2026-travel-guide"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), "input %q", tt.in)
	}
}

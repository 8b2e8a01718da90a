package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantCharacter string
		wantIndex     int
		wantOK        bool
	}{
		{"simple", "jimmy-line-17.wav", "jimmy", 17, true},
		{"hyphenated character", "mrs-smith-line-3.wav", "mrs-smith", 3, true},
		{"with directory", "/audio/script/dialogue/hero-line-1.wav", "hero", 1, true},
		{"no extension", "hero-line-2", "hero", 2, true},
		{"missing separator", "hero-17.wav", "", 0, false},
		{"non-numeric index", "hero-line-one.wav", "", 0, false},
		{"separator twice", "hero-line-x-line-2.wav", "", 0, false},
		{"empty character", "-line-4.wav", "", 0, false},
		{"empty index", "hero-line-.wav", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			character, index, ok := ParseFilename(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCharacter, character)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}

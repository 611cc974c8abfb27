package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette(t *testing.T) {
	palette := Palette()
	assert.Len(t, palette, 13)

	seen := map[Color]bool{}
	for _, c := range palette {
		assert.True(t, c.Valid(), "palette color %q must be valid", c)
		assert.False(t, seen[c], "palette color %q duplicated", c)
		seen[c] = true
	}
	assert.True(t, seen[DefaultColor], "default color must be in the palette")
}

func TestColorValid(t *testing.T) {
	assert.True(t, ColorGray.Valid())
	assert.True(t, IsValidColorString("blue"))
	assert.False(t, IsValidColorString("ultraviolet"))
	assert.False(t, IsValidColorString(""))
	assert.False(t, IsValidColorString("BLUE"))
}

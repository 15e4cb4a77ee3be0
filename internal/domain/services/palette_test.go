package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anyHex = `^#[0-9A-Fa-f]{6}$`

func assertPaletteValid(t *testing.T, text string) {
	t.Helper()
	palette := SynthesizePalette(text)
	for slot, color := range palette.AsMap() {
		assert.Regexp(t, anyHex, color, slot)
	}
	for _, pair := range palette.Pairs() {
		base, fg := pair[0], pair[1]
		if Luminance(base) > 0.6 {
			assert.Less(t, Luminance(fg), Luminance(base), base)
		} else {
			assert.Greater(t, Luminance(fg), Luminance(base), base)
		}
	}
}

func TestSynthesizePaletteExplicitColorsWin(t *testing.T) {
	palette := SynthesizePalette("Brand: #112233, then #445566 and #778899 and later #000000. security")
	assert.Equal(t, "#112233", palette.Primary)
	assert.Equal(t, "#445566", palette.Secondary)
	assert.Equal(t, "#778899", palette.Accent)
}

func TestSynthesizePaletteDerivesMissingExplicitSlots(t *testing.T) {
	palette := SynthesizePalette("primary is #2563EB")
	assert.Equal(t, "#2563EB", palette.Primary)
	assert.Equal(t, Adjust("#2563EB", -20, 10), palette.Secondary)
	assert.Equal(t, Adjust("#2563EB", 60, -10), palette.Accent)

	palette = SynthesizePalette("#2563EB and #F59E0B")
	assert.Equal(t, "#F59E0B", palette.Secondary)
	assert.Equal(t, Adjust("#2563EB", 60, -10), palette.Accent)
}

func TestSynthesizePaletteKeywordPreset(t *testing.T) {
	palette := SynthesizePalette("A secure healthcare portal")
	assert.Equal(t, "#0EA5E9", palette.Primary)
	assert.Equal(t, "#06B6D4", palette.Secondary)
	assert.Equal(t, "#10B981", palette.Accent)

	// security 排在 health 之前
	palette = SynthesizePalette("health data security")
	assert.Equal(t, "#DC2626", palette.Primary)
}

func TestSynthesizePaletteHashIsDeterministic(t *testing.T) {
	first := SynthesizePalette("lorem ipsum dolor")
	second := SynthesizePalette("lorem ipsum dolor")
	require.Equal(t, first, second)
	assert.NotEqual(t, first, SynthesizePalette("lorem ipsum dolor sit"))

	// 大小写不影响哈希结果
	assert.Equal(t, first, SynthesizePalette("LOREM IPSUM DOLOR"))
}

func TestSynthesizePaletteDerivedSlots(t *testing.T) {
	palette := SynthesizePalette("finance")
	assert.Equal(t, Lighten(palette.Primary, 95), palette.Background)
	assert.Equal(t, Lighten(palette.Primary, 98), palette.Surface)
	assert.Equal(t, ContrastOf(palette.Accent), palette.AccentText)
	assert.Equal(t, Adjust(palette.Primary, -10, 5), palette.GradientStart)
	assert.Equal(t, Adjust(palette.Secondary, 10, 5), palette.GradientEnd)
}

func TestSynthesizePaletteAlwaysValid(t *testing.T) {
	for _, text := range []string{"", "lorem ipsum", "food delivery", "#ABCDEF", "zzz", "计算器"} {
		assertPaletteValid(t, text)
	}
}

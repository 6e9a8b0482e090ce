package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "pure-bred horses", Normalize("  pure-bred \t horses \n"))
	assert.Equal(t, "eggs in shell", Normalize("“eggs” in 'shell'"))
	assert.Equal(t, "", Normalize("   "))
}

func TestDigitRun(t *testing.T) {
	assert.Equal(t, "0407199000", DigitRun("0407.19.90.00"))
	assert.Equal(t, "040719", DigitRun("heading 0407 19"))
	assert.Equal(t, "", DigitRun("fresh eggs"))
}

func TestSpacedGrouping(t *testing.T) {
	assert.Equal(t, "0407 19 90 00", SpacedGrouping("0407199000"))
	assert.Equal(t, "0407 19 90", SpacedGrouping("04071990"))
	assert.Equal(t, "0407 19", SpacedGrouping("040719"))
	assert.Equal(t, "0407", SpacedGrouping("0407"))
	assert.Equal(t, "", SpacedGrouping("040"))
	assert.Equal(t, "", SpacedGrouping("04071990001"))
	assert.Equal(t, "", SpacedGrouping("fresh"))
}

func TestExpandCompactTariffCode(t *testing.T) {
	variants := Expand("0407199000")

	assert.Equal(t, []string{
		"0407199000",
		"0407 19 90 00",
		"0407",
		"0407 19",
		"0407 19 90",
	}, variants)
}

func TestExpandDottedTariffCode(t *testing.T) {
	variants := Expand("0407.19.90.00")

	// normalized original first, then spacing and prefix variants
	assert.Equal(t, "0407.19.90.00", variants[0])
	assert.Contains(t, variants, "0407199000")
	assert.Contains(t, variants, "0407 19 90 00")
	assert.Contains(t, variants, "0407")
	assert.Contains(t, variants, "0407 19")
}

func TestExpandMixedTextAndCode(t *testing.T) {
	variants := Expand("heading 0407.19")

	assert.Equal(t, "heading 0407.19", variants[0])
	assert.Contains(t, variants, "040719")
	assert.Contains(t, variants, "0407 19")
	assert.Contains(t, variants, "0407")
	// punctuation-stripped fallback
	assert.Contains(t, variants, "heading 0407 19")
}

func TestExpandPlainText(t *testing.T) {
	variants := Expand("fresh eggs in shell")
	assert.Equal(t, []string{"fresh eggs in shell"}, variants)
}

func TestExpandDeterministic(t *testing.T) {
	first := Expand(" 0407.19.90.00  birds' eggs ")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Expand(" 0407.19.90.00  birds' eggs "))
	}
}

func TestExpandDropsShortVariants(t *testing.T) {
	assert.Empty(t, Expand("a"))
	assert.Empty(t, Expand("   "))
}

func TestExpandHardCap(t *testing.T) {
	variants := Expand("chapter 4 heading 0407.19.90.00 dairy produce birds eggs")
	assert.LessOrEqual(t, len(variants), MaxVariants)
	for _, v := range variants {
		assert.GreaterOrEqual(t, len(v), MinVariantLen)
	}
}

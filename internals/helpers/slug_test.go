package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "fee-slip-march-2024", Slugify("  Fee Slip: March 2024 ", 0))
	assert.Equal(t, "creme-brulee", Slugify("Crème Brûlée", 0))
	assert.Equal(t, "item", Slugify("!!!", 0))
	assert.Equal(t, "abc", Slugify("abcdef", 3))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jose maria", NormalizeName("  José   MARIA "))
	assert.True(t, EqualNames("Aarav Sharma", "aarav  sharma"))
	assert.False(t, EqualNames("Aarav", "Aarav S"))
}

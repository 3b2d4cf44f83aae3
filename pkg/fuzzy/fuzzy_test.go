package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("pho bo", "pho bo"))
	assert.Equal(t, 100, Ratio("", ""))
	assert.Equal(t, 0, Ratio("abc", "xyz"))

	// one substitution in "pho bo" vs "pho ba": distance 1, total 12
	assert.Equal(t, 83, Ratio("pho bo", "pho ba"))
}

func TestPartialRatio(t *testing.T) {
	// exact substring scores perfect
	assert.Equal(t, 100, PartialRatio("pho co", "nha hang pho co quan 1"))
	assert.Equal(t, 100, PartialRatio("nha hang pho co quan 1", "pho co"))

	assert.Equal(t, 0, PartialRatio("", "pho co"))
	assert.Equal(t, 100, PartialRatio("", ""))
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("bo pho", "pho bo"))
	assert.Equal(t, 100, TokenSortRatio("hai san bien dong", "bien dong hai san"))
}

func TestWRatio(t *testing.T) {
	// picks the best of the three ratios
	assert.Equal(t, 100, WRatio("bo pho", "pho bo"))
	assert.Equal(t, 100, WRatio("pho co", "pho co"))

	// substring hit inside a much longer string is dampened
	score := WRatio("abc", "zzzzzzabczzzzzzzzzz")
	assert.Equal(t, 90, score)
}

func TestExtractOne(t *testing.T) {
	choices := []string{"pho co", "hai san bien", "bun cha ha noi"}

	choice, idx, score := ExtractOne("pho co", choices)
	assert.Equal(t, "pho co", choice)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 100, score)

	_, idx, _ = ExtractOne("anything", nil)
	assert.Equal(t, -1, idx)
}

func TestExtractOneKeepsFirstOnTie(t *testing.T) {
	choices := []string{"pho bo", "pho bo"}

	_, idx, score := ExtractOne("pho bo", choices)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 100, score)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("pho", "phở"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

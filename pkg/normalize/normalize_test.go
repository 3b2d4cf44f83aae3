package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips diacritics",
			input:    "Nhà Hàng Phố Cổ",
			expected: "nha hang pho co",
		},
		{
			name:     "converts dj to d",
			input:    "Đồ uống",
			expected: "do uong",
		},
		{
			name:     "removes punctuation",
			input:    "quán ăn ngon, rẻ!",
			expected: "quan an ngon re",
		},
		{
			name:     "collapses whitespace",
			input:    "  phở   bò  ",
			expected: "pho bo",
		},
		{
			name:     "keeps digits",
			input:    "quận 1",
			expected: "quan 1",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "!!! ???",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestStripNamePrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips nha hang prefix",
			input:    "nha hang pho co",
			expected: "pho co",
		},
		{
			name:     "strips quan prefix",
			input:    "quan an ngon",
			expected: "an ngon",
		},
		{
			name:     "strips cua hang prefix",
			input:    "cua hang hai san",
			expected: "hai san",
		},
		{
			name:     "only first prefix is stripped",
			input:    "nha hang quan ngon",
			expected: "quan ngon",
		},
		{
			name:     "no prefix untouched",
			input:    "pho bo ha noi",
			expected: "pho bo ha noi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripNamePrefix(tt.input))
		})
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("gia pho bo bao nhieu", "pho bo"))
	assert.True(t, ContainsWord("pho bo", "pho bo"))
	assert.False(t, ContainsWord("korean bbq", "ok"))
	assert.False(t, ContainsWord("phobo ngon", "pho bo"))
	assert.False(t, ContainsWord("", "pho"))
	assert.False(t, ContainsWord("pho", ""))
}

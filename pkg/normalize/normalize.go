package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var namePrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^nha\s+hang\w*\s*`),
	regexp.MustCompile(`^nhahang\w*\s*`),
	regexp.MustCompile(`^quan\w*\s*`),
	regexp.MustCompile(`^cua\s+hang\w*\s*`),
	regexp.MustCompile(`^cuahang\w*\s*`),
}

// Normalize lowercases the text, strips Vietnamese diacritics and drops
// every rune that is not a letter, digit or space. Whitespace runs are
// collapsed to a single space.
func Normalize(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	// NFD does not decompose the stroked d.
	result = strings.ReplaceAll(result, "đ", "d")

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	words := strings.Fields(result)
	return strings.Join(words, " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// StripNamePrefix removes a leading venue word such as "nha hang" or
// "quan" from an already normalized restaurant name mention.
func StripNamePrefix(text string) string {
	for _, re := range namePrefixes {
		if re.MatchString(text) {
			return strings.TrimSpace(re.ReplaceAllString(text, ""))
		}
	}
	return text
}

// ContainsWord reports whether needle occurs in haystack on word
// boundaries. Both arguments are expected to be normalized already.
func ContainsWord(haystack string, needle string) bool {
	if needle == "" {
		return false
	}

	idx := strings.Index(haystack, needle)
	for idx >= 0 {
		beforeOK := idx == 0 || haystack[idx-1] == ' '
		after := idx + len(needle)
		afterOK := after == len(haystack) || haystack[after] == ' '
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next < 0 {
			break
		}
		idx = idx + 1 + next
	}

	return false
}

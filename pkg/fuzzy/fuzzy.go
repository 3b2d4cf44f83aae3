package fuzzy

import (
	"sort"
	"strings"
)

// Ratio scores the similarity of two strings from 0 to 100 based on
// Levenshtein distance over the combined length.
func Ratio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	total := len(s1) + len(s2)
	if total == 0 {
		return 100
	}

	distance := levenshteinDistance(s1, s2)
	score := float64(total-2*distance) / float64(total) * 100
	if score < 0 {
		return 0
	}
	return int(score + 0.5)
}

// PartialRatio scores the shorter string against the best matching
// substring window of the longer one.
func PartialRatio(s1, s2 string) int {
	shorter, longer := s1, s2
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := longer[i : i+len(shorter)]
		if score := Ratio(shorter, window); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}

	return best
}

// TokenSortRatio compares the strings with their words sorted, making
// the score insensitive to word order.
func TokenSortRatio(s1, s2 string) int {
	return Ratio(sortTokens(s1), sortTokens(s2))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// WRatio combines the plain, partial and token-sort ratios, weighting
// the partial score down when the lengths differ a lot.
func WRatio(s1, s2 string) int {
	base := Ratio(s1, s2)
	tokenSort := TokenSortRatio(s1, s2)

	partial := PartialRatio(s1, s2)
	shorter, longer := len(s1), len(s2)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer > 0 && float64(shorter)/float64(longer) < 0.5 {
		partial = int(float64(partial)*0.9 + 0.5)
	}

	best := base
	if partial > best {
		best = partial
	}
	if tokenSort > best {
		best = tokenSort
	}
	return best
}

// ExtractOne returns the choice with the highest WRatio against the
// query, with the index of that choice. Ties keep the earliest choice.
func ExtractOne(query string, choices []string) (string, int, int) {
	bestIdx := -1
	bestScore := -1

	for i, choice := range choices {
		score := WRatio(query, choice)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return "", -1, 0
	}
	return choices[bestIdx], bestIdx, bestScore
}

func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

func minOf(a, b, c int) int {
	if a < b && a < c {
		return a
	} else if b < c {
		return b
	}
	return c
}

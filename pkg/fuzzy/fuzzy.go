package fuzzy

import "strings"

// LevenshteinDistance calculates the edit distance between two strings,
// the number of single-character insertions, deletions or substitutions
// required to change one into the other.
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalizeString(s1)
	s2 = normalizeString(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// FuzzyMatch checks if query fuzzy-matches text within a given threshold,
// the maximum allowed edit distance per word.
func FuzzyMatch(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)

	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// MatchTask checks if a task matches the query, with typo tolerance scaled
// to the query length.
func MatchTask(query, title, description string) bool {
	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	} else if len(query) >= 8 {
		threshold = 3
	}

	if FuzzyMatch(query, title, threshold) {
		return true
	}
	return FuzzyMatch(query, description, threshold)
}

// ScoreTask scores how relevant a task is to a query. Higher is more
// relevant; title hits outweigh description hits.
func ScoreTask(query, title, description string) float64 {
	query = normalizeString(query)
	score := 0.0

	titleNorm := normalizeString(title)
	if strings.Contains(titleNorm, query) {
		score += 100.0
		if containsWord(titleNorm, query) {
			score += 50.0
		}
	} else {
		for _, word := range strings.Fields(titleNorm) {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	descNorm := normalizeString(description)
	if strings.Contains(descNorm, query) {
		score += 40.0
	} else {
		for _, word := range strings.Fields(descNorm) {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 20.0 - float64(dist)*6
			}
		}
	}

	return score
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalizeString lowercases and collapses whitespace
func normalizeString(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// containsWord checks if text contains query as a whole word
func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}

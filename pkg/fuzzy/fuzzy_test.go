package fuzzy

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"deploy", "depoly", 2},
		{"Deploy", "deploy", 0}, // case-insensitive
	}
	for _, c := range cases {
		if got := LevenshteinDistance(c.s1, c.s2); got != c.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", c.s1, c.s2, got, c.want)
		}
	}
}

func TestFuzzyMatch(t *testing.T) {
	if !FuzzyMatch("deploy", "Deploy staging environment", 2) {
		t.Error("expected substring match")
	}
	if !FuzzyMatch("depoly", "deploy staging", 2) {
		t.Error("expected match within edit distance")
	}
	if !FuzzyMatch("dep", "deployment summary", 1) {
		t.Error("expected prefix match")
	}
	if FuzzyMatch("water", "deploy staging", 2) {
		t.Error("unexpected match for unrelated query")
	}
}

func TestScoreTaskPrefersTitle(t *testing.T) {
	titleHit := ScoreTask("deploy", "Deploy staging", "")
	descHit := ScoreTask("deploy", "Release notes", "deployment summary")
	if titleHit <= descHit {
		t.Errorf("title hit (%f) must outscore description hit (%f)", titleHit, descHit)
	}
}

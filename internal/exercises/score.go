package exercises

import (
	"strings"
	"unicode"
)

const (
	scoreNameExact       = 100
	scoreNamePrefix      = 80
	scoreNameContains    = 60
	scoreWordExact       = 70
	scoreWordPrefix      = 50
	scorePrimaryMuscle   = 50
	scoreSecondaryMuscle = 30
	scoreEquipment       = 20
	scoreCategory        = 10
)

// NormalizeQuery trims and lowercases a free-text query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Score computes the relevance of the exercise for an already normalized query.
// Only the strongest of the name bonuses (exact, prefix, contains) counts, same
// for the two word bonuses; the muscle, equipment and category bonuses add up.
// A score of 0 means no match.
func Score(e Exercise, q string) int {
	if q == "" {
		return 0
	}

	score := 0
	name := strings.ToLower(e.Name)
	switch {
	case name == q:
		score += scoreNameExact
	case strings.HasPrefix(name, q):
		score += scoreNamePrefix
	case strings.Contains(name, q):
		score += scoreNameContains
	}

	wordExact, wordPrefix := false, false
	for _, w := range nameWords(name) {
		if w == q {
			wordExact = true
			break
		}
		if strings.HasPrefix(w, q) {
			wordPrefix = true
		}
	}
	if wordExact {
		score += scoreWordExact
	} else if wordPrefix {
		score += scoreWordPrefix
	}

	if anyContains(e.PrimaryMuscles, q) {
		score += scorePrimaryMuscle
	}
	if anyContains(e.SecondaryMuscles, q) {
		score += scoreSecondaryMuscle
	}
	if strings.Contains(strings.ToLower(e.Equipment), q) {
		score += scoreEquipment
	}
	if strings.Contains(strings.ToLower(e.Category), q) {
		score += scoreCategory
	}

	return score
}

// nameWords splits on whitespace and hyphens.
func nameWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}

// anyContains reports whether any value contains the lowercased needle, ignoring case.
func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

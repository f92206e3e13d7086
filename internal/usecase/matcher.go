package usecase

import (
	"math"
	"strings"

	"github.com/resumatch/backend/internal/domain"
)

// SkillsMatch reports whether two skill labels refer to the same skill.
// Labels match when their normalized forms are equal, or when one normalized
// form is a substring of the other (so "python" matches "python 3"). An empty
// normalized form never matches anything, on either side.
func SkillsMatch(a, b string) bool {
	normA := NormalizeSkill(a)
	normB := NormalizeSkill(b)

	if normA == "" || normB == "" {
		return false
	}

	if normA == normB {
		return true
	}

	return strings.Contains(normA, normB) || strings.Contains(normB, normA)
}

// FindMatches partitions requiredSkills into matched and missing lists by
// scanning candidateSkills for each required skill in order. The first
// candidate that matches wins; the required skill's original text is kept in
// the output, not the candidate's. Required skills are not deduplicated, so a
// duplicate requirement appears twice in the result.
func FindMatches(candidateSkills, requiredSkills []string) (matched, missing []string) {
	for _, required := range requiredSkills {
		found := false
		for _, candidate := range candidateSkills {
			if SkillsMatch(required, candidate) {
				found = true
				break
			}
		}

		if found {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}

	return matched, missing
}

// MatchPercentage returns the share of required skills that matched, rounded
// to two decimal places. Zero required skills count as a full match.
func MatchPercentage(matchedCount, totalRequired int) float64 {
	if totalRequired == 0 {
		return 100.0
	}

	percentage := float64(matchedCount) / float64(totalRequired) * 100
	return math.Round(percentage*100) / 100
}

// MatchResumeToJob runs the full matching pass: required skills drive the
// percentage, nice-to-have skills only contribute the matched list (their
// missing counterpart is discarded).
func MatchResumeToJob(candidateSkills, requiredSkills, niceToHaveSkills []string) *domain.MatchResult {
	matched, missing := FindMatches(candidateSkills, requiredSkills)
	matchedNice, _ := FindMatches(candidateSkills, niceToHaveSkills)

	result := &domain.MatchResult{
		MatchedSkills:     matched,
		MissingSkills:     missing,
		MatchedNiceToHave: matchedNice,
		MatchPercentage:   MatchPercentage(len(matched), len(requiredSkills)),
	}

	// Keep JSON output as [] instead of null for empty lists
	if result.MatchedSkills == nil {
		result.MatchedSkills = []string{}
	}
	if result.MissingSkills == nil {
		result.MissingSkills = []string{}
	}
	if result.MatchedNiceToHave == nil {
		result.MatchedNiceToHave = []string{}
	}

	return result
}

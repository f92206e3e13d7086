package usecase

import "strings"

// skillAliases maps common alternate spellings of a skill to a single
// canonical form. Lookup happens only after lowercasing and trimming, and
// only on exact key equality.
var skillAliases = map[string]string{
	"javascript": "js",
	"typescript": "ts",
	"node.js":    "nodejs",
	"react.js":   "react",
	"vue.js":     "vue",
	"angular.js": "angular",
	"c++":        "cpp",
	"c#":         "csharp",
	"postgresql": "postgres",
	"mongodb":    "mongo",
}

// NormalizeSkill canonicalizes a skill label for comparison: lowercase, trim
// surrounding whitespace, then substitute a known alias if the whole value
// matches one. The input is never mutated; an empty input yields an empty
// string.
func NormalizeSkill(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

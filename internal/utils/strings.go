package utils

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\p{Cc}\p{Cf}\p{Co}\p{Cs}]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// NormalizePlace cleans a free-text place name: control characters become
// spaces, runs of whitespace collapse, and the ends are trimmed.
func NormalizePlace(s string) string {
	result := controlChars.ReplaceAllString(s, " ")
	result = spaceRuns.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// ContainsFold reports whether substr is within s, ignoring case. An empty
// substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	slugAllowed  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	maxSlugRunes = 200
)

// GenerateSlug derives a URL slug from a title.
// "Practical Go, part 2!" -> "practical-go-part-2"
func GenerateSlug(input string) string {
	lower := strings.ToLower(input)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := slugInvalid.ReplaceAllString(hyphenated, "")
	normalized := slugHyphens.ReplaceAllString(cleaned, "-")
	trimmed := strings.Trim(normalized, "-")

	if len(trimmed) > maxSlugRunes {
		trimmed = strings.Trim(trimmed[:maxSlugRunes], "-")
	}
	return trimmed
}

// IsValidSlug reports whether s is an acceptable client-supplied slug.
func IsValidSlug(s string) bool {
	return s != "" && len(s) <= maxSlugRunes && slugAllowed.MatchString(s)
}

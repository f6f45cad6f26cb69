package util

import (
	"regexp"
	"strings"
)

var (
	reParenthetical = regexp.MustCompile(`\(.+\)`)
	reCommaSplit    = regexp.MustCompile(`[ ]*,[ ]*`)
	reSpaces        = regexp.MustCompile(`[ ]+`)
)

func StripParenthetical(input string) string {
	return reParenthetical.ReplaceAllString(input, "")
}

func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// BeforeSeparator drops everything from the first occurrence of sep on.
func BeforeSeparator(input, sep string) string {
	if i := strings.Index(input, sep); i >= 0 {
		return input[:i]
	}
	return input
}

// ReverseCommaParts turns "Family, Given" into "Given Family". Inputs without
// a comma pass through unchanged.
func ReverseCommaParts(input string) string {
	if !strings.Contains(input, ",") {
		return input
	}
	parts := reCommaSplit.Split(input, -1)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

// BreakLongTokens rewrites embedded hyphens in overlong tokens to the
// typesetting soft-break form so the badge layout may still wrap there.
func BreakLongTokens(input string, limit int) string {
	if limit <= 0 {
		return input
	}
	parts := strings.Split(input, " ")
	for i, part := range parts {
		if len([]rune(part)) > limit {
			parts[i] = strings.ReplaceAll(part, "-", `-""`)
		}
	}
	return strings.Join(parts, " ")
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

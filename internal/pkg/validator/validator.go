package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	identifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]{0,127}$`)
	objectIDRegex   = regexp.MustCompile(`^[0-9a-f]{24}$`)
)

// IsValidIdentifier checks external references such as content and user IDs.
func IsValidIdentifier(id string) bool {
	return identifierRegex.MatchString(id)
}

// IsValidObjectID checks if the string is a hex mongo ObjectID
func IsValidObjectID(id string) bool {
	return objectIDRegex.MatchString(strings.ToLower(id))
}

// RuneLen counts characters, not bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// WithinLength reports whether the trimmed text has between min and max characters.
func WithinLength(s string, min, max int) bool {
	n := RuneLen(strings.TrimSpace(s))
	return n >= min && n <= max
}

// OneOf checks membership in a closed set of values
func OneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

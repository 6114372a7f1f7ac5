package check

import "regexp"

// formatPattern accepts <non-space, non-@>+ @ <non-space, non-@>+ . <non-space, non-@>+.
// It is intentionally permissive: quoted locals, IDN and multi-label rules
// are left to later stages.
//
// RE2's \s is ASCII only, so the class also excludes \v, the Unicode
// separators (\p{Z}, which includes U+2028 and U+2029) and U+FEFF.
var formatPattern = regexp.MustCompile(`^` + formatPart + `@` + formatPart + `\.` + formatPart + `$`)

const formatPart = `[^\s\v\p{Z}\x{FEFF}@]+`

// FormatChecker decides whether a string is shaped like an email address.
type FormatChecker struct{}

func NewFormatChecker() *FormatChecker {
	return &FormatChecker{}
}

// IsValidFormat reports whether candidate matches the address pattern.
func (c *FormatChecker) IsValidFormat(candidate string) bool {
	return IsValidFormat(candidate)
}

// IsValidFormat reports whether candidate matches the address pattern.
func IsValidFormat(candidate string) bool {
	return formatPattern.MatchString(candidate)
}

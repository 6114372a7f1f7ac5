// Package role holds the set of local parts that address a function
// (support@, admin@) rather than a person.
package role

import "strings"

var defaultPrefixes = []string{
	"admin",
	"support",
	"info",
	"sales",
	"contact",
	"help",
	"office",
	"webmaster",
}

// Set is a read-only, case-insensitive set of role local parts.
type Set struct {
	prefixes map[string]struct{}
}

// NewSet builds a Set from the given local parts.
func NewSet(prefixes ...string) *Set {
	s := &Set{prefixes: make(map[string]struct{}, len(prefixes))}
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			s.prefixes[p] = struct{}{}
		}
	}
	return s
}

var defaultSet = NewSet(defaultPrefixes...)

// Default returns the compiled-in role prefixes.
func Default() *Set { return defaultSet }

// Contains reports whether local is a role account name.
// The whole local part must match; "support-team" is not "support".
func (s *Set) Contains(local string) bool {
	if s == nil {
		return false
	}
	_, ok := s.prefixes[strings.ToLower(local)]
	return ok
}

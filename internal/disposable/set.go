// Package disposable holds the set of known throwaway mailbox domains.
package disposable

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed list.txt
var rawList string

// Set is a read-only, case-insensitive set of domains.
// It is safe for concurrent use once built.
type Set struct {
	domains map[string]struct{}
}

// NewSet builds a Set from the given domains.
func NewSet(domains ...string) *Set {
	s := &Set{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			s.domains[d] = struct{}{}
		}
	}
	return s
}

// ParseList builds a Set from a newline separated list.
// Blank lines and lines starting with '#' are ignored.
func ParseList(list string) *Set {
	var domains []string
	for _, line := range strings.Split(list, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			domains = append(domains, line)
		}
	}
	return NewSet(domains...)
}

var defaultSet = sync.OnceValue(func() *Set { return ParseList(rawList) })

// Default returns the compiled-in disposable domain list.
func Default() *Set {
	return defaultSet()
}

// Contains reports whether domain is a known disposable domain.
func (s *Set) Contains(domain string) bool {
	if s == nil {
		return false
	}
	_, ok := s.domains[strings.ToLower(domain)]
	return ok
}

// Len returns the number of domains in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.domains)
}

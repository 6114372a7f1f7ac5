package parse

import (
	"errors"
	"strings"

	"golang.org/x/net/idna"
)

// ErrMalformedAddress is returned when an address does not contain exactly
// one '@' with a non-empty part on each side.
var ErrMalformedAddress = errors.New("parse: malformed address")

// Email is the internal representation of a split email address.
// The check/ packages receive this as parameter.
type Email struct {
	Raw         string // the original, trimmed input
	Local       string // the part before @, as written
	Domain      string // the part after @, as written
	DomainASCII string // lowercase ASCII/Punycode form of Domain (for DNS)
}

// Split splits raw on its only '@'. Inputs with zero or multiple '@'
// characters, or with an empty local or domain part, are rejected with
// ErrMalformedAddress.
func Split(raw string) (Email, error) {
	raw = strings.TrimSpace(raw)

	if strings.Count(raw, "@") != 1 {
		return Email{Raw: raw}, ErrMalformedAddress
	}
	local, domain, _ := strings.Cut(raw, "@")
	if local == "" || domain == "" {
		return Email{Raw: raw}, ErrMalformedAddress
	}

	return Email{
		Raw:         raw,
		Local:       local,
		Domain:      domain,
		DomainASCII: lookupForm(domain),
	}, nil
}

// lookupForm converts a domain to the form sent to the resolver.
// Internationalized domains are converted to Punycode via IDNA2008.
// Domains that fail conversion are passed through lowercased, so the
// resolver reports them as unresolvable instead of the parser rejecting them.
func lookupForm(domain string) string {
	lower := strings.ToLower(domain)
	for _, r := range lower {
		if r > 127 {
			a, err := idna.Lookup.ToASCII(lower)
			if err != nil {
				return lower
			}
			return a
		}
	}
	return lower
}

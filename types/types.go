// Package types contains the shared types for mailscreen.
// This package does not import anything from other mailscreen packages
// to avoid circular imports.
package types

import (
	"unicode"
	"unicode/utf8"
)

// Kind identifies the category of a verification outcome.
type Kind = string

const (
	KindInvalidFormat      Kind = "invalid_format"
	KindPolicyRejected     Kind = "policy_rejected"
	KindDomainUnresolvable Kind = "domain_unresolvable"
	KindVerified           Kind = "verified"
	KindTransportError     Kind = "transport_error"
)

// Outcome is the categorized result of verifying one address.
// Reason is only set for KindPolicyRejected.
type Outcome struct {
	Email  string `json:"email"`
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason,omitempty"`
}

// OK reports whether the address passed every check.
func (o Outcome) OK() bool {
	return o.Kind == KindVerified
}

// Text is the short human-readable phrase for the outcome.
// Transport error details are never part of it.
func (o Outcome) Text() string {
	switch o.Kind {
	case KindInvalidFormat:
		return "Invalid format"
	case KindPolicyRejected:
		return capitalize(o.Reason)
	case KindDomainUnresolvable:
		return "Domain has no mail server or not found"
	case KindVerified:
		return "Valid email"
	case KindTransportError:
		return "Error checking domain"
	}
	return "Unknown outcome"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

package mailscreen

import "errors"

var (
	// ErrMissingInput is returned when Verify or VerifyAll receives
	// nothing but whitespace. It is a usability signal, not a verdict
	// on any address.
	ErrMissingInput = errors.New("mailscreen: no input")

	// ErrNoResolver is returned when WithResolver is called with nil.
	ErrNoResolver = errors.New("mailscreen: MX resolver is nil")

	// ErrInvalidDNSOptions is returned when DNSOptions names an unknown format.
	ErrInvalidDNSOptions = errors.New("mailscreen: DNSOptions.Format must be json, wire or system")
)

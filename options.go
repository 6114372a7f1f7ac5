package mailscreen

import "time"

// DNS lookup transports accepted by DNSOptions.Format.
const (
	FormatJSON   = "json"   // DoH JSON API (dns.google/resolve style)
	FormatWire   = "wire"   // DoH RFC 8484 binary messages
	FormatSystem = "system" // operating system resolver, no DoH
)

// DNSOptions configures the MX lookup.
type DNSOptions struct {
	// Endpoint is the DoH URL. Default depends on Format (dns.google).
	Endpoint string
	// Format selects the lookup transport. Default: "json"
	Format string
	// Timeout is the maximum time for one MX lookup. Default: 5s
	// A bulk run is bounded by line count × Timeout when sequential.
	Timeout time.Duration
	// RateLimit caps DoH lookups per second. Default: 0 (no limit)
	RateLimit float64
}

func defaultDNSOptions() DNSOptions {
	return DNSOptions{
		Format:  FormatJSON,
		Timeout: 5 * time.Second,
	}
}

// PolicyOptions replaces the compiled-in reference data.
// Nil slices and zero lengths keep the defaults.
type PolicyOptions struct {
	// DisposableDomains replaces the built-in disposable domain list.
	DisposableDomains []string
	// RoleAccounts replaces the built-in role local parts (admin, support, ...).
	RoleAccounts []string
	// MaxLocalLength is the longest accepted local part. Default: 64
	MaxLocalLength int
	// MaxDomainLength is the longest accepted domain. Default: 255
	MaxDomainLength int
}

// BulkOptions configures VerifyAll.
type BulkOptions struct {
	// Workers is the number of lines verified at once. Default: 1
	// (strictly sequential, one lookup in flight).
	Workers int
}

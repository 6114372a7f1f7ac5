// Package mailscreen screens email addresses: a permissive format check,
// heuristic quality rules (length, disposable domains, role accounts) and a
// live MX lookup over DNS-over-HTTPS. It is a best-effort filter, not a
// deliverability guarantee.
//
// Single address:
//
//	outcome, err := mailscreen.New().Verify(ctx, "user@example.com")
//
// Line-delimited bulk input:
//
//	report, err := mailscreen.New().
//	    WithDNS(mailscreen.DNSOptions{Timeout: 3 * time.Second}).
//	    VerifyAll(ctx, "a@example.com\nb@example.org")
//	fmt.Println(report.Render())
package mailscreen

import "github.com/optimode/mailscreen/types"

// Outcome is a re-export from the types package so that consumers
// don't need to import the types package directly.
type Outcome = types.Outcome

// Kind is a re-export.
type Kind = types.Kind

// Kind constants re-exported.
const (
	InvalidFormat      = types.KindInvalidFormat
	PolicyRejected     = types.KindPolicyRejected
	DomainUnresolvable = types.KindDomainUnresolvable
	Verified           = types.KindVerified
	TransportError     = types.KindTransportError
)

package check

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/optimode/mailscreen/internal/logging"
)

// MXResolver answers whether a domain has at least one mail exchanger.
// A non-nil error means the lookup itself failed.
type MXResolver interface {
	HasMX(ctx context.Context, domain string) (bool, error)
}

// MXResolverFunc adapts a function to MXResolver.
type MXResolverFunc func(ctx context.Context, domain string) (bool, error)

func (f MXResolverFunc) HasMX(ctx context.Context, domain string) (bool, error) {
	return f(ctx, domain)
}

// MXChecker wraps an MXResolver. Every call is one independent lookup:
// no retries, no caching.
type MXChecker struct {
	resolver MXResolver
}

func NewMXChecker(r MXResolver) *MXChecker {
	return &MXChecker{resolver: r}
}

// HasMailExchanger reports whether domain has a mail exchanger.
// Lookup failures are logged and reported as false.
func (c *MXChecker) HasMailExchanger(ctx context.Context, domain string) bool {
	ok, _ := c.Lookup(ctx, domain)
	return ok
}

// Lookup is HasMailExchanger with the transport error returned, so callers
// can tell "no mail server" from "lookup failed". The boolean is always
// false when err is non-nil.
func (c *MXChecker) Lookup(ctx context.Context, domain string) (bool, error) {
	ok, err := c.resolver.HasMX(ctx, domain)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Str("domain", domain).Msg("MX lookup failed")
		return false, err
	}
	return ok, nil
}

// SystemResolver looks MX records up through the operating system resolver
// instead of DNS-over-HTTPS.
type SystemResolver struct {
	Timeout  time.Duration
	Resolver *net.Resolver
}

func (r SystemResolver) HasMX(ctx context.Context, domain string) (bool, error) {
	res := r.Resolver
	if res == nil {
		res = net.DefaultResolver
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	records, err := res.LookupMX(ctx, domain)
	if err != nil {
		// NXDOMAIN is an answer, not a transport failure.
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false, nil
		}
		return false, err
	}
	return len(records) > 0, nil
}

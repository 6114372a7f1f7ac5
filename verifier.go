package mailscreen

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/optimode/mailscreen/check"
	"github.com/optimode/mailscreen/internal/disposable"
	"github.com/optimode/mailscreen/internal/doh"
	"github.com/optimode/mailscreen/internal/logging"
	"github.com/optimode/mailscreen/internal/parse"
	"github.com/optimode/mailscreen/internal/role"
	"github.com/optimode/mailscreen/types"
)

// Verifier is the main fluent builder struct.
// Instantiate with the New() function. A configured Verifier holds only
// read-only state and is safe for concurrent use.
type Verifier struct {
	format  *check.FormatChecker
	policy  *check.PolicyChecker
	mx      *check.MXChecker
	workers int
	err     error // configuration error, returned on Verify()
}

// New creates a Verifier with the built-in reference data and a
// DNS-over-HTTPS MX lookup against dns.google.
func New() *Verifier {
	v := &Verifier{
		format:  check.NewFormatChecker(),
		policy:  check.NewPolicyChecker(check.PolicyConfig{}),
		workers: 1,
	}
	return v.WithDNS()
}

// WithDNS configures the MX lookup transport.
// Optionally overrides the default DNSOptions.
func (v *Verifier) WithDNS(opts ...DNSOptions) *Verifier {
	o := defaultDNSOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Format == "" {
		o.Format = FormatJSON
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultDNSOptions().Timeout
	}

	switch o.Format {
	case FormatJSON, FormatWire:
		v.mx = check.NewMXChecker(doh.New(doh.Config{
			Endpoint:  o.Endpoint,
			Format:    doh.Format(o.Format),
			Timeout:   o.Timeout,
			RateLimit: o.RateLimit,
		}))
	case FormatSystem:
		v.mx = check.NewMXChecker(check.SystemResolver{Timeout: o.Timeout})
	default:
		v.err = ErrInvalidDNSOptions
	}
	return v
}

// WithResolver replaces the MX lookup with a custom resolver,
// typically a stub in tests or a caching layer owned by the caller.
func (v *Verifier) WithResolver(r check.MXResolver) *Verifier {
	if r == nil {
		v.err = ErrNoResolver
		return v
	}
	v.mx = check.NewMXChecker(r)
	return v
}

// WithPolicy overrides the reference data used by the heuristic rules.
func (v *Verifier) WithPolicy(opts PolicyOptions) *Verifier {
	cfg := check.PolicyConfig{
		MaxLocalLength:  opts.MaxLocalLength,
		MaxDomainLength: opts.MaxDomainLength,
	}
	if opts.DisposableDomains != nil {
		cfg.Disposable = disposable.NewSet(opts.DisposableDomains...)
	}
	if opts.RoleAccounts != nil {
		cfg.Roles = role.NewSet(opts.RoleAccounts...)
	}
	v.policy = check.NewPolicyChecker(cfg)
	return v
}

// WithBulk configures VerifyAll.
func (v *Verifier) WithBulk(opts BulkOptions) *Verifier {
	v.workers = opts.Workers
	if v.workers < 1 {
		v.workers = 1
	}
	return v
}

// Verify screens one address. The pipeline short-circuits: format,
// then policy, then MX lookup. Blank input returns ErrMissingInput.
// The only other error is the context's, when it ends before the lookup
// completes; every check failure is reported through the Outcome.
func (v *Verifier) Verify(ctx context.Context, raw string) (Outcome, error) {
	if v.err != nil {
		return Outcome{}, v.err
	}
	email := strings.TrimSpace(raw)
	if email == "" {
		return Outcome{}, ErrMissingInput
	}
	return v.verify(ctx, email)
}

func (v *Verifier) verify(ctx context.Context, email string) (Outcome, error) {
	out := Outcome{Email: email}

	if !v.format.IsValidFormat(email) {
		out.Kind = types.KindInvalidFormat
		return out, nil
	}

	// The format pattern already excludes a second '@'; the split
	// still rejects it rather than guessing which part is the domain.
	parsed, err := parse.Split(email)
	if err != nil {
		out.Kind = types.KindInvalidFormat
		return out, nil
	}

	if reason, rejected := v.policy.Evaluate(parsed); rejected {
		out.Kind = types.KindPolicyRejected
		out.Reason = reason
		return out, nil
	}

	if parsed.DomainASCII == "" {
		out.Kind = types.KindInvalidFormat
		return out, nil
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}

	ok, err := v.mx.Lookup(ctx, parsed.DomainASCII)
	switch {
	case err != nil && ctx.Err() != nil:
		return out, ctx.Err()
	case err != nil:
		out.Kind = types.KindTransportError
	case ok:
		out.Kind = types.KindVerified
	default:
		out.Kind = types.KindDomainUnresolvable
	}
	return out, nil
}

// VerifyAll screens every non-blank line of text and returns the outcomes
// in input order. A failure on one line never stops the others.
//
// Lines run one at a time unless BulkOptions.Workers is above 1.
// The context is checked before each line; once it is done, VerifyAll
// returns the entries completed so far (a prefix of the input) together
// with the context error.
func (v *Verifier) VerifyAll(ctx context.Context, text string) (Report, error) {
	if v.err != nil {
		return Report{}, v.err
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return Report{}, ErrMissingInput
	}

	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.WithRunID(ctx, logging.NewRunID())
	}
	log := logging.FromContext(ctx)
	log.Debug().Int("lines", len(lines)).Int("workers", v.workers).Msg("bulk verification started")

	var (
		report Report
		err    error
	)
	if v.workers <= 1 {
		report, err = v.verifySequential(ctx, lines)
	} else {
		report, err = v.verifyParallel(ctx, lines)
	}

	log.Info().
		Int("lines", len(lines)).
		Int("completed", report.Len()).
		Int("verified", report.Count(Verified)).
		Int("transport_errors", report.Count(TransportError)).
		Err(err).
		Msg("bulk verification finished")
	return report, err
}

func (v *Verifier) verifySequential(ctx context.Context, lines []string) (Report, error) {
	report := Report{Entries: make([]Entry, 0, len(lines))}
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		out, err := v.verify(ctx, strings.TrimSpace(line))
		if err != nil {
			return report, err
		}
		report.Entries = append(report.Entries, Entry{Line: line, Outcome: out})
	}
	return report, nil
}

func (v *Verifier) verifyParallel(ctx context.Context, lines []string) (Report, error) {
	outcomes := make([]*Outcome, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, line := range lines {
		if ctx.Err() != nil {
			break
		}
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := v.verify(gctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			outcomes[i] = &out
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	report := Report{Entries: make([]Entry, 0, len(lines))}
	for i, out := range outcomes {
		if out == nil {
			break
		}
		report.Entries = append(report.Entries, Entry{Line: lines[i], Outcome: *out})
	}
	return report, err
}

// splitLines splits on "\n" and "\r\n" and drops lines that are blank
// after trimming. Surviving lines keep their exact text.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

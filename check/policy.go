package check

import (
	"unicode/utf8"

	"github.com/optimode/mailscreen/internal/disposable"
	"github.com/optimode/mailscreen/internal/parse"
	"github.com/optimode/mailscreen/internal/role"
)

// Rejection reasons, in evaluation order.
const (
	ReasonTooLong    = "parts too long"
	ReasonDisposable = "disposable domain blocked"
	ReasonRoleBased  = "role-based address flagged"
)

const (
	DefaultMaxLocalLength  = 64
	DefaultMaxDomainLength = 255
)

// PolicyConfig is the policy checker configuration.
// Nil sets and zero lengths fall back to the compiled-in defaults.
type PolicyConfig struct {
	Disposable      *disposable.Set
	Roles           *role.Set
	MaxLocalLength  int
	MaxDomainLength int
}

// PolicyChecker applies the heuristic quality rules to a split address.
type PolicyChecker struct {
	cfg PolicyConfig
}

func NewPolicyChecker(cfg PolicyConfig) *PolicyChecker {
	if cfg.Disposable == nil {
		cfg.Disposable = disposable.Default()
	}
	if cfg.Roles == nil {
		cfg.Roles = role.Default()
	}
	if cfg.MaxLocalLength <= 0 {
		cfg.MaxLocalLength = DefaultMaxLocalLength
	}
	if cfg.MaxDomainLength <= 0 {
		cfg.MaxDomainLength = DefaultMaxDomainLength
	}
	return &PolicyChecker{cfg: cfg}
}

// Evaluate returns the first rule the address violates.
// Rules run in a fixed order (length, disposable domain, role account)
// and only the first match is reported.
func (c *PolicyChecker) Evaluate(email parse.Email) (reason string, rejected bool) {
	if utf8.RuneCountInString(email.Local) > c.cfg.MaxLocalLength ||
		utf8.RuneCountInString(email.Domain) > c.cfg.MaxDomainLength {
		return ReasonTooLong, true
	}

	if c.cfg.Disposable.Contains(email.Domain) {
		return ReasonDisposable, true
	}

	if c.cfg.Roles.Contains(email.Local) {
		return ReasonRoleBased, true
	}

	return "", false
}

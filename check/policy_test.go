package check_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/mailscreen/check"
	"github.com/optimode/mailscreen/internal/disposable"
	"github.com/optimode/mailscreen/internal/parse"
	"github.com/optimode/mailscreen/internal/role"
)

func mustSplit(t *testing.T, raw string) parse.Email {
	t.Helper()
	e, err := parse.Split(raw)
	require.NoError(t, err)
	return e
}

func TestPolicyChecker_Defaults(t *testing.T) {
	c := check.NewPolicyChecker(check.PolicyConfig{})

	tests := []struct {
		name       string
		email      string
		wantReason string
	}{
		{"clean", "user@example.com", ""},
		{"role prefix", "admin@example.com", check.ReasonRoleBased},
		{"role prefix any case", "Support@example.com", check.ReasonRoleBased},
		{"disposable", "user@mailinator.com", check.ReasonDisposable},
		{"disposable any case", "user@MAILINATOR.com", check.ReasonDisposable},
		{"disposable wins over role", "admin@mailinator.com", check.ReasonDisposable},
		{"local too long", strings.Repeat("a", 65) + "@example.com", check.ReasonTooLong},
		{"local at limit", strings.Repeat("a", 64) + "@example.com", ""},
		{"domain too long", "user@" + strings.Repeat("d", 252) + ".com", check.ReasonTooLong},
		{"length wins over role", "admin@" + strings.Repeat("d", 252) + ".com", check.ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, rejected := c.Evaluate(mustSplit(t, tt.email))
			assert.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.wantReason != "", rejected)
		})
	}
}

func TestPolicyChecker_CountsCharactersNotBytes(t *testing.T) {
	c := check.NewPolicyChecker(check.PolicyConfig{})
	// 64 three-byte runes: within the character limit.
	_, rejected := c.Evaluate(mustSplit(t, strings.Repeat("用", 64)+"@example.com"))
	assert.False(t, rejected)
}

func TestPolicyChecker_InjectedSets(t *testing.T) {
	c := check.NewPolicyChecker(check.PolicyConfig{
		Disposable:     disposable.NewSet("burner.test"),
		Roles:          role.NewSet("billing"),
		MaxLocalLength: 8,
	})

	reason, _ := c.Evaluate(mustSplit(t, "user@burner.test"))
	assert.Equal(t, check.ReasonDisposable, reason)

	reason, _ = c.Evaluate(mustSplit(t, "user@mailinator.com"))
	assert.Equal(t, "", reason, "default list must not leak into an injected set")

	reason, _ = c.Evaluate(mustSplit(t, "billing@example.com"))
	assert.Equal(t, check.ReasonRoleBased, reason)

	reason, _ = c.Evaluate(mustSplit(t, "admin@example.com"))
	assert.Equal(t, "", reason)

	reason, _ = c.Evaluate(mustSplit(t, "ninechars@example.com"))
	assert.Equal(t, check.ReasonTooLong, reason)
}

func TestPolicyChecker_Deterministic(t *testing.T) {
	c := check.NewPolicyChecker(check.PolicyConfig{})
	e := mustSplit(t, "admin@yopmail.com")
	r1, _ := c.Evaluate(e)
	r2, _ := c.Evaluate(e)
	assert.Equal(t, r1, r2)
}

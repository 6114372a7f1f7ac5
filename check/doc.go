// Package check contains the individual screening stages used by mailscreen:
// the format pattern, the heuristic policy, and the MX lookup adapter.
// These types can be used directly, but the recommended approach is
// to use the fluent builder API from the github.com/optimode/mailscreen package.
package check

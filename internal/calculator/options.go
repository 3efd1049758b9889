package calculator

import "fmt"

// RemainderPolicy decides what happens to the cent difference between the
// rounded per-participant totals and the rounded assigned total.
type RemainderPolicy string

const (
	// RemainderIgnore leaves every participant's rounded total untouched.
	RemainderIgnore RemainderPolicy = "ignore"
	// RemainderLargestShare adds the difference to the participant who owes the most.
	RemainderLargestShare RemainderPolicy = "largest-share"
)

// ParseRemainderPolicy converts a config value into a RemainderPolicy.
// The empty string selects RemainderIgnore.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch RemainderPolicy(s) {
	case "", RemainderIgnore:
		return RemainderIgnore, nil
	case RemainderLargestShare:
		return RemainderLargestShare, nil
	default:
		return "", fmt.Errorf("unknown remainder policy %q", s)
	}
}

type options struct {
	remainder RemainderPolicy
}

// Option configures CalculateSummary.
type Option func(*options)

// WithRemainder selects the rounding remainder policy.
func WithRemainder(p RemainderPolicy) Option {
	return func(o *options) {
		o.remainder = p
	}
}

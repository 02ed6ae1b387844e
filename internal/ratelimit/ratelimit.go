// Package ratelimit decides which calls of a counted function get logged.
package ratelimit

import "github.com/cockroachdb/errors"

// Defaults used when a counting decorator is built without explicit values.
const (
	DefaultMuteAfter = 5
	DefaultLogEvery  = 10
)

var (
	// ErrInvalidMuteAfter is returned for a negative mute-after window.
	ErrInvalidMuteAfter = errors.New("mute_after must be non-negative")

	// ErrInvalidLogEvery is returned for a log-every interval below 1.
	ErrInvalidLogEvery = errors.New("log_every must be positive")
)

// Policy logs the first MuteAfter calls and then every LogEvery-th call.
type Policy struct {
	MuteAfter int
	LogEvery  int
}

// NewPolicy validates the parameters and returns a Policy.
// Invalid values are rejected, never clamped.
func NewPolicy(muteAfter, logEvery int) (Policy, error) {
	if muteAfter < 0 {
		return Policy{}, errors.Wrapf(ErrInvalidMuteAfter, "got %d", muteAfter)
	}
	if logEvery < 1 {
		return Policy{}, errors.Wrapf(ErrInvalidLogEvery, "got %d", logEvery)
	}

	return Policy{MuteAfter: muteAfter, LogEvery: logEvery}, nil
}

// ShouldLog reports whether the call with the given 1-based count is logged.
func (p Policy) ShouldLog(count uint64) bool {
	return ShouldLog(count, p.MuteAfter, p.LogEvery)
}

// ShouldLog reports whether call number count should be logged: calls
// 1..muteAfter always are, and so is every multiple of logEvery. A call in
// both ranges is still a single emission.
//
// count is expected to be at least 1 and logEvery at least 1; a count of 0
// or a logEvery below 1 never logs.
func ShouldLog(count uint64, muteAfter, logEvery int) bool {
	if count == 0 || logEvery < 1 {
		return false
	}

	if muteAfter > 0 && count-1 < uint64(muteAfter) {
		return true
	}

	return count%uint64(logEvery) == 0
}

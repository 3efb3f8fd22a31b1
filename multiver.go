// Package multiver is the runtime support library for code emitted by the
// multiver generator. Generated query methods compare semantic versions on
// every call, always against literal version and range strings that were
// written into the source at generation time. The helpers here parse those
// literals once and memoize the result, so the per-call cost of a generated
// method is a map lookup and a comparison.
package multiver

import (
	"sync"

	"github.com/Masterminds/semver/v3"
)

// zero is the version variants without introduction metadata have been
// implemented since.
var zero = semver.New(0, 0, 0, "", "")

// Parsed literals are memoized per input string. Both caches only ever grow:
// the set of distinct literals is fixed at generation time.
var (
	versionCache sync.Map // string -> *semver.Version
	rangeCache   sync.Map // string -> *semver.Constraints
)

// ZeroVersion returns version 0.0.0. A variant that carries no introduction
// metadata reports it from its ImplementedSince method, which makes the
// variant exist in every version.
func ZeroVersion() *semver.Version {
	return zero
}

// Version parses s as a semantic version. Results are memoized, so repeated
// calls with the same literal return the same *semver.Version.
func Version(s string) (*semver.Version, error) {
	if v, ok := versionCache.Load(s); ok {
		return v.(*semver.Version), nil
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, NewVersionError(s, err)
	}
	versionCache.Store(s, v)
	return v, nil
}

// MustVersion is like Version but panics on a malformed input. Generated
// code calls it with literals that were validated at generation time, so a
// panic here means the generated file was edited by hand.
func MustVersion(s string) *semver.Version {
	v, err := Version(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Range parses s as a version range. A range is a comma-separated comparator
// set such as ">=1.2.0, <2.0.0"; a version matches the range when every
// comparator accepts it. Results are memoized like Version.
func Range(s string) (*semver.Constraints, error) {
	if c, ok := rangeCache.Load(s); ok {
		return c.(*semver.Constraints), nil
	}
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, NewRangeError(s, err)
	}
	rangeCache.Store(s, c)
	return c, nil
}

// MustRange is like Range but panics on a malformed input.
func MustRange(s string) *semver.Constraints {
	c, err := Range(s)
	if err != nil {
		panic(err)
	}
	return c
}

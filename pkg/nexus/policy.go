package nexus

import "strings"

// Policy is the set of version kinds a repository accepts. It is derived
// once per run from the target repository and immutable thereafter.
type Policy int

const (
	// PolicyMixed accepts both releases and snapshots.
	PolicyMixed Policy = iota

	// PolicyRelease accepts release versions only.
	PolicyRelease

	// PolicySnapshot accepts snapshot versions only.
	PolicySnapshot
)

// String returns the lowercase policy name.
func (p Policy) String() string {
	switch p {
	case PolicyRelease:
		return "release"
	case PolicySnapshot:
		return "snapshot"
	default:
		return "mixed"
	}
}

// policyFromMetadata maps a server-declared version policy string onto a
// Policy. Matching is case-insensitive; anything unrecognized, including an
// empty value, means the repository accepts both kinds.
func policyFromMetadata(s string) Policy {
	switch strings.ToLower(s) {
	case "snapshot", "snapshots":
		return PolicySnapshot
	case "release", "releases":
		return PolicyRelease
	default:
		return PolicyMixed
	}
}

// PolicyFromName guesses a repository's policy from its name. This is the
// fallback when the server's metadata endpoint is unavailable; it carries no
// guarantee and exists behind the same classification surface so callers
// never depend on which path produced the answer.
func PolicyFromName(name string) Policy {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "snapshot"):
		return PolicySnapshot
	case strings.Contains(lower, "release"):
		return PolicyRelease
	default:
		return PolicyMixed
	}
}

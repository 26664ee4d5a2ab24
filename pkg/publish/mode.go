package publish

import (
	"fmt"

	"github.com/repoship/repoship/pkg/nexus"
)

// Mode is the user's selection of which version kinds to upload. It is
// fixed for the duration of a run.
type Mode int

const (
	// ModeAll uploads both releases and snapshots.
	ModeAll Mode = iota

	// ModeReleases uploads release versions only.
	ModeReleases

	// ModeSnapshots uploads snapshot versions only.
	ModeSnapshots
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeReleases:
		return "releases"
	case ModeSnapshots:
		return "snapshots"
	default:
		return "all"
	}
}

// ParseMode converts a user-supplied mode name. Singular forms are accepted
// alongside the canonical plural ones.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "all", "":
		return ModeAll, nil
	case "releases", "release":
		return ModeReleases, nil
	case "snapshots", "snapshot":
		return ModeSnapshots, nil
	default:
		return ModeAll, fmt.Errorf("invalid mode %q (expected all, releases, or snapshots)", s)
	}
}

// ModeConflicts reports whether the mode can never produce an eligible
// artifact under the repository's policy. Such a combination is a
// configuration error: the run is aborted before anything is uploaded.
func ModeConflicts(mode Mode, policy nexus.Policy) bool {
	return (policy == nexus.PolicyRelease && mode == ModeSnapshots) ||
		(policy == nexus.PolicySnapshot && mode == ModeReleases)
}

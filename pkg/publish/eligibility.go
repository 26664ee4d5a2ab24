package publish

import (
	"github.com/repoship/repoship/pkg/maven"
	"github.com/repoship/repoship/pkg/nexus"
)

// Eligible decides whether a version may be uploaded given the active mode
// and the repository's policy. It is a pure function: the same inputs
// always produce the same answer.
//
// The repository policy is checked before the user's mode because the
// server is authoritative; the returned reason names whichever rule
// rejected the version first.
func Eligible(version string, mode Mode, policy nexus.Policy) (bool, string) {
	snapshot := maven.IsSnapshotVersion(version)

	switch {
	case policy == nexus.PolicyRelease && snapshot:
		return false, "repository accepts releases only"
	case policy == nexus.PolicySnapshot && !snapshot:
		return false, "repository accepts snapshots only"
	case mode == ModeReleases && snapshot:
		return false, "mode excludes snapshots"
	case mode == ModeSnapshots && !snapshot:
		return false, "mode excludes releases"
	default:
		return true, ""
	}
}

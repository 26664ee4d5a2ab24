package maven

import (
	"path/filepath"
	"strings"
)

// snapshotSuffix marks a version as a snapshot. Matching is case-insensitive,
// so "1.0-snapshot" and "1.0-SNAPSHOT" are both snapshots.
const snapshotSuffix = "-SNAPSHOT"

// Coordinate identifies a Maven artifact by its groupId, artifactId, and
// version. All three fields are non-empty once a coordinate has been
// successfully parsed from a descriptor.
type Coordinate struct {
	GroupID    string // dot-separated group (e.g., "com.google.guava")
	ArtifactID string // artifact name (e.g., "guava")
	Version    string // version string (e.g., "32.1.3-jre" or "1.0-SNAPSHOT")
}

// String returns the canonical "groupId:artifactId:version" form.
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// IsSnapshot reports whether the coordinate's version carries the
// "-SNAPSHOT" suffix, compared case-insensitively.
func (c Coordinate) IsSnapshot() bool {
	return IsSnapshotVersion(c.Version)
}

// IsSnapshotVersion reports whether version ends with "-SNAPSHOT",
// compared case-insensitively.
func IsSnapshotVersion(version string) bool {
	return strings.HasSuffix(strings.ToUpper(version), snapshotSuffix)
}

// BaseName returns the file base name "<artifactId>-<version>" shared by all
// files belonging to this coordinate in a repository directory.
func (c Coordinate) BaseName() string {
	return c.ArtifactID + "-" + c.Version
}

// RepositoryPath returns the directory fragment a local repository stores
// this coordinate under: the group with dots replaced by path separators,
// followed by the artifactId and version segments.
//
// Example: com.example:lib:1.0 -> "com/example/lib/1.0" (with the
// platform separator).
func (c Coordinate) RepositoryPath() string {
	segs := append(strings.Split(c.GroupID, "."), c.ArtifactID, c.Version)
	return filepath.Join(segs...)
}

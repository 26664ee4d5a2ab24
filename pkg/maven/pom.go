package maven

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
)

// DescriptorSuffix is the file name suffix identifying project descriptors
// in a local repository directory.
const DescriptorSuffix = ".pom"

// Sentinel errors for descriptor parsing. Both are recoverable for the
// caller: a directory whose descriptor fails to parse is skipped, not
// treated as an upload failure.
var (
	// ErrMalformedDescriptor is returned when a descriptor file is not
	// well-formed XML.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrIncompleteCoordinate is returned when groupId, artifactId, or
	// version is still missing after the parent fallback.
	ErrIncompleteCoordinate = errors.New("incomplete coordinate")
)

// pomProject mirrors the subset of a pom.xml needed to extract a coordinate.
// encoding/xml matches elements by local name, so descriptors with or
// without the Maven POM namespace decode identically; no manual namespace
// stripping is needed.
type pomProject struct {
	GroupID    string    `xml:"groupId"`
	ArtifactID string    `xml:"artifactId"`
	Version    string    `xml:"version"`
	Parent     pomParent `xml:"parent"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// ParseDescriptor reads a pom.xml-style descriptor and extracts its
// coordinate.
//
// groupId and version fall back to the nested <parent> block when absent at
// the top level, matching Maven inheritance. artifactId has no parent
// fallback.
//
// Returns [ErrMalformedDescriptor] if the file is not well-formed XML, and
// [ErrIncompleteCoordinate] if any coordinate field is still empty after
// the fallback. Parsing is idempotent: the same file always yields the same
// coordinate or the same error.
func ParseDescriptor(path string) (Coordinate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Coordinate{}, fmt.Errorf("read descriptor: %w", err)
	}
	return parseDescriptorBytes(data)
}

func parseDescriptorBytes(data []byte) (Coordinate, error) {
	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}

	coord := Coordinate{
		GroupID:    pom.GroupID,
		ArtifactID: pom.ArtifactID,
		Version:    pom.Version,
	}
	if coord.GroupID == "" {
		coord.GroupID = pom.Parent.GroupID
	}
	if coord.Version == "" {
		coord.Version = pom.Parent.Version
	}

	var missing []string
	if coord.GroupID == "" {
		missing = append(missing, "groupId")
	}
	if coord.ArtifactID == "" {
		missing = append(missing, "artifactId")
	}
	if coord.Version == "" {
		missing = append(missing, "version")
	}
	if len(missing) > 0 {
		return Coordinate{}, fmt.Errorf("%w: missing %v", ErrIncompleteCoordinate, missing)
	}
	return coord, nil
}

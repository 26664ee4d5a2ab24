// Package maven models the local Maven repository layout consumed by repoship.
//
// It covers three concerns:
//   - Coordinates: the (groupId, artifactId, version) triple identifying an
//     artifact, including snapshot detection.
//   - Descriptors: parsing coordinates out of pom.xml files, with the
//     parent-block fallback Maven allows for groupId and version.
//   - File naming: deriving classifier and extension from sibling file names
//     of the form <artifactId>-<version>[-<classifier>].<extension>, and
//     recognizing checksum/sidecar files that are never uploaded.
//
// The package is pure: it performs no network I/O and holds no state beyond
// the file contents it is asked to read.
package maven

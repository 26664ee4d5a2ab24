package maven

import "strings"

// checksumExts are suffixes of checksum and signature files that accompany
// artifacts but are never uploaded themselves; the server regenerates them.
var checksumExts = []string{".md5", ".sha1", ".sha256", ".sha512", ".asc"}

// sidecarNames are exact file names the local repository machinery writes
// next to artifacts. They carry no artifact content.
var sidecarNames = map[string]bool{
	"maven-metadata.xml":         true,
	"maven-metadata-local.xml":   true,
	"_remote.repositories":       true,
	"resolver-status.properties": true,
}

// IsIgnoredFile reports whether name is a checksum, signature, or sidecar
// file that should be excluded from upload consideration entirely.
func IsIgnoredFile(name string) bool {
	if sidecarNames[name] {
		return true
	}
	if strings.HasSuffix(name, ".lastUpdated") {
		return true
	}
	for _, ext := range checksumExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsDescriptor reports whether name is a project descriptor file.
func IsDescriptor(name string) bool {
	return strings.HasSuffix(name, DescriptorSuffix)
}

// SplitArtifactFile derives the classifier and extension of a candidate file
// belonging to an artifact with the given base name ("<artifactId>-<version>").
//
// Outcomes:
//   - name does not start with base: belongs=false. The file is not part of
//     this artifact and should be silently ignored.
//   - "<base>.<ext>": extension without classifier.
//   - "<base>-<classifier>.<ext>": classifier plus extension; an extension
//     containing dots is kept whole (e.g., "tar.gz").
//   - anything else (no extension after the classifier, or a remainder that
//     starts with neither "-" nor "."): belongs=true, ok=false. The caller
//     should skip the file with a warning.
func SplitArtifactFile(name, base string) (ext, classifier string, belongs, ok bool) {
	if !strings.HasPrefix(name, base) {
		return "", "", false, false
	}
	rest := name[len(base):]

	switch {
	case strings.HasPrefix(rest, "-"):
		// classifier.dot-joined-extension
		parts := strings.Split(rest[1:], ".")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return "", "", true, false
		}
		return strings.Join(parts[1:], "."), parts[0], true, true
	case strings.HasPrefix(rest, "."):
		if rest == "." {
			return "", "", true, false
		}
		return rest[1:], "", true, true
	default:
		return "", "", true, false
	}
}

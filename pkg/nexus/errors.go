package nexus

import "errors"

// Sentinel errors describing remote call outcomes. Callers branch on these
// with errors.Is; the taxonomy mirrors how the publisher treats each case.
var (
	// ErrNotFound is returned when the repository does not exist on the
	// server. Fatal for a run.
	ErrNotFound = errors.New("repository not found")

	// ErrUnauthorized is returned when the server rejects the credentials.
	ErrUnauthorized = errors.New("authentication rejected")

	// ErrForbidden is returned when the credentials lack access to the
	// repository. Fatal for a run.
	ErrForbidden = errors.New("access forbidden")

	// ErrNetwork is returned for transport-level failures: the server could
	// not be reached at all, or the connection timed out.
	ErrNetwork = errors.New("network error")

	// ErrUnavailable is returned when the server answered but the metadata
	// endpoint returned an unexpected status. The caller may fall back to
	// inferring the version policy from the repository name.
	ErrUnavailable = errors.New("repository metadata unavailable")

	// ErrAlreadyExists is returned when an uploaded asset is already present
	// in the repository. Treated as an idempotent success by the publisher.
	ErrAlreadyExists = errors.New("component already exists")

	// ErrPolicyViolation is returned when the server rejects an asset
	// because it does not match the repository's version policy.
	ErrPolicyViolation = errors.New("version policy violation")
)

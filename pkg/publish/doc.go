// Package publish walks a local Maven repository tree and drives uploads to
// a remote repository.
//
// The walk is strictly sequential: one version directory is fully processed
// before the next begins, and the only mutable state is the run [Tally]
// owned by the [Publisher]. Per-artifact problems (bad descriptors, stray
// files, failed transfers) are isolated, counted, and logged; only a
// mode/policy configuration conflict aborts a run outright.
package publish

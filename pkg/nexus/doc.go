// Package nexus is the client for the remote artifact server.
//
// It speaks the Nexus-style REST surface repoship needs and nothing more:
// reading repository metadata (format, type, declared version policy),
// listing repositories, and uploading single component assets. Credentials
// are attached once when the client is built and reused for every call.
//
// Metadata reads go through a short retry loop and an optional file cache;
// uploads are sent exactly once with a generous bounded timeout, so a hung
// transfer cannot stall a run indefinitely and a failed transfer is never
// silently replayed.
package nexus

// Package httputil provides HTTP utilities shared by the repoship server
// clients.
//
//   - [Cache]: file-based caching of JSON-marshalable responses, used for
//     repository metadata lookups so repeated `repo info` and `repos list`
//     calls do not hit the server every time.
//   - [Retry]: bounded retry with exponential backoff for transient
//     failures (network errors, 5xx responses). Only reads are retried;
//     artifact uploads are never replayed.
//
// Cache entries live under ~/.cache/repoship/ with a configurable TTL and
// can be cleared with `repoship cache clear`. Keys should be namespaced per
// concern (e.g., "repo:") to avoid collisions.
package httputil

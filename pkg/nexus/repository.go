package nexus

import (
	"context"
	"errors"
	"fmt"
)

// knownFormat is the artifact format repoship publishes.
const knownFormat = "maven2"

// knownTypes are the repository types the server is expected to declare.
var knownTypes = map[string]bool{
	"hosted": true,
	"proxy":  true,
	"group":  true,
}

// Repository is the server's description of one repository.
type Repository struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Type   string `json:"type"`
	URL    string `json:"url"`
	Maven  struct {
		VersionPolicy string `json:"versionPolicy"`
	} `json:"maven"`
}

// Policy returns the version policy the repository declares.
func (r *Repository) Policy() Policy {
	return policyFromMetadata(r.Maven.VersionPolicy)
}

// Warnings returns non-fatal oddities in the repository's metadata: an
// unexpected artifact format or an unknown repository type. An upload to
// such a repository may still succeed, so these are surfaced to the user
// rather than enforced.
func (r *Repository) Warnings() []string {
	var warnings []string
	if r.Format != "" && r.Format != knownFormat {
		warnings = append(warnings, fmt.Sprintf("repository format is %q, expected %q", r.Format, knownFormat))
	}
	if r.Type != "" && !knownTypes[r.Type] {
		warnings = append(warnings, fmt.Sprintf("unknown repository type %q", r.Type))
	}
	return warnings
}

// GetRepository fetches metadata for one repository. When a cache is
// attached and refresh is false, a cached copy is served if fresh.
//
// Returns [ErrNotFound] if the repository does not exist, [ErrUnauthorized]
// or [ErrForbidden] for credential problems, [ErrNetwork] if the server
// could not be reached, and [ErrUnavailable] if it answered with an
// unexpected status.
func (c *Client) GetRepository(ctx context.Context, name string, refresh bool) (*Repository, error) {
	url := fmt.Sprintf("%s/service/rest/v1/repositories/%s", c.baseURL, name)

	var repo Repository
	if c.cache != nil && !refresh {
		if ok, _ := c.cache.Get("repo:"+name, &repo); ok {
			return &repo, nil
		}
	}
	if err := c.getJSON(ctx, url, &repo); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.Set("repo:"+name, &repo)
	}
	return &repo, nil
}

// ListRepositories fetches all repositories visible to the credentials.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	url := c.baseURL + "/service/rest/v1/repositories"

	var repos []Repository
	if err := c.getJSON(ctx, url, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ResolvePolicy determines the version policy of the named repository.
//
// The server's declared policy wins when metadata is readable. When the
// metadata endpoint is unavailable ([ErrUnavailable]), the policy is
// inferred from the repository name instead. A missing repository, rejected
// credentials, or an unreachable server remain errors: those conditions are
// fatal for a run, not classification fallbacks.
//
// The returned Repository is nil when classification fell back to the name
// heuristic.
func (c *Client) ResolvePolicy(ctx context.Context, name string) (Policy, *Repository, error) {
	repo, err := c.GetRepository(ctx, name, true)
	if err == nil {
		return repo.Policy(), repo, nil
	}
	if errors.Is(err, ErrUnavailable) {
		return PolicyFromName(name), nil, nil
	}
	return PolicyMixed, nil, err
}

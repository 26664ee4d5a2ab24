package nexus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/repoship/repoship/pkg/maven"
)

// Asset is one file of an artifact, ready for upload.
type Asset struct {
	Path       string // local file path
	Extension  string // e.g. "jar", "pom", "tar.gz"
	Classifier string // e.g. "sources"; empty for the main asset
}

// Uploader stores single artifact assets in a remote repository. The
// publisher depends on this interface so the transport can be replaced by a
// no-op for dry runs and by fakes in tests.
type Uploader interface {
	UploadAsset(ctx context.Context, repository string, coord maven.Coordinate, asset Asset) error
}

// UploadAsset stores one asset under its Maven coordinate in the named
// repository via the components endpoint.
//
// Outcome mapping:
//   - 2xx: nil.
//   - already present on the server: [ErrAlreadyExists]; callers treat this
//     as an idempotent success.
//   - rejected by the repository's version policy: [ErrPolicyViolation].
//   - 401 / 403: [ErrUnauthorized] / [ErrForbidden].
//   - transport failure or any other status: an error wrapping [ErrNetwork].
//
// The request is sent exactly once; a failure is terminal for this asset.
func (c *Client) UploadAsset(ctx context.Context, repository string, coord maven.Coordinate, asset Asset) error {
	file, err := os.Open(asset.Path)
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"maven2.groupId":          coord.GroupID,
		"maven2.artifactId":       coord.ArtifactID,
		"maven2.version":          coord.Version,
		"maven2.generate-pom":     "false",
		"maven2.asset1.extension": asset.Extension,
	}
	if asset.Classifier != "" {
		fields["maven2.asset1.classifier"] = asset.Classifier
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return fmt.Errorf("build form: %w", err)
		}
	}
	part, err := form.CreateFormFile("maven2.asset1", filepath.Base(asset.Path))
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read asset: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("build form: %w", err)
	}

	url := fmt.Sprintf("%s/service/rest/v1/components?repository=%s", c.baseURL, repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.applyHeaders(req)

	resp, err := c.uploads.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	return checkUploadStatus(resp.StatusCode, readBody(resp.Body, 4096))
}

// checkUploadStatus maps component upload responses onto the error
// taxonomy. The server reports duplicates and policy rejections as 400s
// with descriptive bodies, so those are matched by message.
func checkUploadStatus(code int, body string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusConflict:
		return ErrAlreadyExists
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusBadRequest:
		lower := strings.ToLower(body)
		if strings.Contains(lower, "already exist") {
			return ErrAlreadyExists
		}
		if strings.Contains(lower, "does not allow") {
			return ErrPolicyViolation
		}
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, code, body)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, code, body)
	}
}

package publish

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/repoship/repoship/pkg/maven"
	"github.com/repoship/repoship/pkg/nexus"
)

// DryRun is an Uploader that stores nothing. Every asset the publisher
// would send is logged and counted as succeeded, so a dry run reports
// exactly what a real run would attempt.
type DryRun struct {
	Logger *log.Logger
}

// UploadAsset logs the would-be upload and reports success.
func (d *DryRun) UploadAsset(ctx context.Context, repository string, coord maven.Coordinate, asset nexus.Asset) error {
	d.Logger.Info("Would upload",
		"repository", repository,
		"coordinate", coord.String(),
		"extension", asset.Extension,
		"classifier", asset.Classifier,
	)
	return nil
}

var _ nexus.Uploader = (*DryRun)(nil)

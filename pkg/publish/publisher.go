package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/repoship/repoship/pkg/maven"
	"github.com/repoship/repoship/pkg/nexus"
)

// ErrModeConflict is returned by [Publisher.Run] when the upload mode can
// never match the repository's policy. Nothing is uploaded.
var ErrModeConflict = errors.New("upload mode conflicts with repository policy")

// Publisher walks a local repository tree and uploads every eligible
// artifact file through its Uploader. Fields are read-only during a run.
type Publisher struct {
	Uploader   nexus.Uploader
	Logger     *log.Logger
	Repository string       // target repository name
	Mode       Mode         // user-selected upload mode
	Policy     nexus.Policy // target repository's version policy
}

// Run traverses the tree rooted at root and returns the final tally.
//
// The run aborts immediately with [ErrModeConflict] if mode and policy are
// incompatible, and with the context's error if cancelled mid-walk. Every
// other problem is confined to the directory or file it occurred in and
// recorded in the tally.
func (p *Publisher) Run(ctx context.Context, root string) (Tally, error) {
	var tally Tally

	if ModeConflicts(p.Mode, p.Policy) {
		return tally, fmt.Errorf("%w: repository %q accepts %s versions but mode is %q",
			ErrModeConflict, p.Repository, p.Policy, p.Mode)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.Logger.Warn("Cannot read path, skipping", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.processDir(ctx, root, path, &tally)
		return nil
	})
	if err != nil {
		return tally, err
	}
	return tally, nil
}

// processDir handles one directory: locate its descriptor, check
// eligibility, and upload the descriptor plus sibling files. Directories
// without a descriptor are not artifact directories and are passed over
// without touching the tally.
func (p *Publisher) processDir(ctx context.Context, root, dir string, tally *Tally) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.Logger.Warn("Cannot list directory, skipping", "dir", dir, "error", err)
		tally.Skipped++
		return
	}

	descriptor := ""
	for _, entry := range entries {
		if entry.IsDir() || maven.IsIgnoredFile(entry.Name()) {
			continue
		}
		if maven.IsDescriptor(entry.Name()) {
			descriptor = entry.Name()
			break
		}
	}
	if descriptor == "" {
		return
	}

	descriptorPath := filepath.Join(dir, descriptor)
	coord, err := maven.ParseDescriptor(descriptorPath)
	if err != nil {
		p.Logger.Warn("Unusable descriptor, skipping directory", "file", descriptorPath, "error", err)
		tally.Skipped++
		return
	}

	if ok, reason := Eligible(coord.Version, p.Mode, p.Policy); !ok {
		p.Logger.Debug("Version not eligible, skipping", "coordinate", coord.String(), "reason", reason)
		tally.Skipped++
		return
	}

	// A descriptor that does not live under its own group/artifact/version
	// path is misplaced; uploading it would store the artifact under
	// coordinates that disagree with its location.
	rel, err := filepath.Rel(root, dir)
	if err != nil || !strings.Contains(rel, coord.RepositoryPath()) {
		p.Logger.Warn("Directory does not match coordinate, skipping",
			"dir", dir, "coordinate", coord.String())
		tally.Skipped++
		return
	}

	// The descriptor goes first. If the server will not take it there is no
	// point sending the files it describes.
	if err := p.upload(ctx, coord, nexus.Asset{Path: descriptorPath, Extension: "pom"}); err != nil {
		p.Logger.Warn("Descriptor upload failed, abandoning directory",
			"coordinate", coord.String(), "file", descriptor, "error", err)
		tally.Failed++
		return
	}
	tally.Succeeded++

	base := coord.BaseName()
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == descriptor || maven.IsIgnoredFile(entry.Name()) {
			continue
		}

		ext, classifier, belongs, ok := maven.SplitArtifactFile(entry.Name(), base)
		if !belongs {
			continue
		}
		if !ok {
			p.Logger.Warn("Unrecognized file name, skipping",
				"coordinate", coord.String(), "file", entry.Name())
			tally.Skipped++
			continue
		}

		asset := nexus.Asset{
			Path:       filepath.Join(dir, entry.Name()),
			Extension:  ext,
			Classifier: classifier,
		}
		if err := p.upload(ctx, coord, asset); err != nil {
			p.Logger.Warn("Upload failed",
				"coordinate", coord.String(), "file", entry.Name(), "error", err)
			tally.Failed++
			continue
		}
		tally.Succeeded++
	}
}

// upload sends one asset, treating an already-present asset as success.
func (p *Publisher) upload(ctx context.Context, coord maven.Coordinate, asset nexus.Asset) error {
	err := p.Uploader.UploadAsset(ctx, p.Repository, coord, asset)
	if errors.Is(err, nexus.ErrAlreadyExists) {
		p.Logger.Debug("Already present on server", "coordinate", coord.String(), "path", asset.Path)
		return nil
	}
	return err
}

package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/repoship/repoship/pkg/maven"
	"github.com/repoship/repoship/pkg/nexus"
)

type uploadCall struct {
	coord maven.Coordinate
	asset nexus.Asset
}

// fakeUploader records upload calls and fails the files listed in fail.
type fakeUploader struct {
	calls []uploadCall
	fail  map[string]error // keyed by file base name
}

func (f *fakeUploader) UploadAsset(ctx context.Context, repository string, coord maven.Coordinate, asset nexus.Asset) error {
	f.calls = append(f.calls, uploadCall{coord: coord, asset: asset})
	if err, ok := f.fail[filepath.Base(asset.Path)]; ok {
		return err
	}
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// buildTree writes files under root at the given relative paths.
func buildTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

const libPom = `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>lib</artifactId>
  <version>1.0</version>
</project>`

const snapshotPom = `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>lib</artifactId>
  <version>2.0-SNAPSHOT</version>
</project>`

func newPublisher(uploader nexus.Uploader, mode Mode, policy nexus.Policy) *Publisher {
	return &Publisher{
		Uploader:   uploader,
		Logger:     testLogger(),
		Repository: "maven-releases",
		Mode:       mode,
		Policy:     policy,
	}
}

func TestPublisher_Run(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom":          libPom,
		"com/example/lib/1.0/lib-1.0.jar":          "jar",
		"com/example/lib/1.0/lib-1.0-sources.jar":  "src",
		"com/example/lib/1.0/lib-1.0.jar.sha1":     "da39a3ee",
		"com/example/lib/1.0/maven-metadata.xml":   "<metadata/>",
		"com/example/lib/1.0/_remote.repositories": "",
		"com/example/lib/1.0/unrelated-2.0.jar":    "stray",
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if tally.Succeeded != 3 || tally.Failed != 0 || tally.Skipped != 0 {
		t.Errorf("tally = %+v, want 3 succeeded, 0 failed, 0 skipped", tally)
	}
	if len(uploader.calls) != 3 {
		t.Fatalf("expected 3 uploads, got %d", len(uploader.calls))
	}
	if uploader.calls[0].asset.Extension != "pom" {
		t.Errorf("first upload extension = %q, want pom", uploader.calls[0].asset.Extension)
	}
	for _, call := range uploader.calls {
		if call.coord.String() != "com.example:lib:1.0" {
			t.Errorf("unexpected coordinate %s", call.coord.String())
		}
	}
}

func TestPublisher_Run_ModeConflictAborts(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom": libPom,
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeReleases, nexus.PolicySnapshot)

	_, err := p.Run(context.Background(), root)
	if !errors.Is(err, ErrModeConflict) {
		t.Fatalf("expected ErrModeConflict, got %v", err)
	}
	if len(uploader.calls) != 0 {
		t.Errorf("expected zero uploads, got %d", len(uploader.calls))
	}
}

func TestPublisher_Run_DescriptorFailureAbandonsDirectory(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom":         libPom,
		"com/example/lib/1.0/lib-1.0.jar":         "jar",
		"com/example/lib/1.0/lib-1.0-sources.jar": "src",
	})

	uploader := &fakeUploader{fail: map[string]error{
		"lib-1.0.pom": errors.New("server error"),
	}}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Failed != 1 || tally.Succeeded != 0 {
		t.Errorf("tally = %+v, want exactly 1 failed and 0 succeeded", tally)
	}
	if len(uploader.calls) != 1 {
		t.Errorf("siblings attempted after descriptor failure: %d calls", len(uploader.calls))
	}
}

func TestPublisher_Run_AlreadyExistsIsSuccess(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom": libPom,
		"com/example/lib/1.0/lib-1.0.jar": "jar",
	})

	uploader := &fakeUploader{fail: map[string]error{
		"lib-1.0.jar": nexus.ErrAlreadyExists,
	}}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Succeeded != 2 || tally.Failed != 0 {
		t.Errorf("tally = %+v, want already-present file counted as succeeded", tally)
	}
}

func TestPublisher_Run_SiblingFailureDoesNotStopOthers(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom":         libPom,
		"com/example/lib/1.0/lib-1.0.jar":         "jar",
		"com/example/lib/1.0/lib-1.0-sources.jar": "src",
	})

	uploader := &fakeUploader{fail: map[string]error{
		"lib-1.0.jar": errors.New("connection reset"),
	}}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Succeeded != 2 || tally.Failed != 1 {
		t.Errorf("tally = %+v, want 2 succeeded, 1 failed", tally)
	}
	if len(uploader.calls) != 3 {
		t.Errorf("expected all 3 uploads attempted, got %d", len(uploader.calls))
	}
}

func TestPublisher_Run_IneligibleVersionSkipped(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/2.0-SNAPSHOT/lib-2.0-SNAPSHOT.pom": snapshotPom,
		"com/example/lib/2.0-SNAPSHOT/lib-2.0-SNAPSHOT.jar": "jar",
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeAll, nexus.PolicyRelease)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Skipped != 1 || tally.Succeeded != 0 {
		t.Errorf("tally = %+v, want 1 skipped", tally)
	}
	if len(uploader.calls) != 0 {
		t.Errorf("expected zero uploads, got %d", len(uploader.calls))
	}
}

func TestPublisher_Run_MisplacedDescriptorSkipped(t *testing.T) {
	root := t.TempDir()
	// Descriptor declares com.example:lib:1.0 but sits in the wrong path.
	buildTree(t, root, map[string]string{
		"org/other/thing/9.9/lib-1.0.pom": libPom,
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Skipped != 1 {
		t.Errorf("tally = %+v, want 1 skipped", tally)
	}
	if len(uploader.calls) != 0 {
		t.Errorf("expected zero uploads, got %d", len(uploader.calls))
	}
}

func TestPublisher_Run_BadDescriptorsSkipped(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/broken/1.0/broken-1.0.pom": `<project><groupId>unclosed`,
		"com/example/orphan/1.0/orphan-1.0.pom": `<project><artifactId>orphan</artifactId></project>`,
		"com/example/lib/1.0/lib-1.0.pom":       libPom,
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Skipped != 2 || tally.Succeeded != 1 {
		t.Errorf("tally = %+v, want 2 skipped and 1 succeeded", tally)
	}
}

func TestPublisher_Run_UnrecognizedSiblingSkipped(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom":       libPom,
		"com/example/lib/1.0/lib-1.0-badformat": "???",
		"com/example/lib/1.0/lib-1.0.jar":       "jar",
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Succeeded != 2 || tally.Skipped != 1 {
		t.Errorf("tally = %+v, want 2 succeeded, 1 skipped", tally)
	}
}

func TestPublisher_Run_SnapshotModeFiltersReleases(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom":                    libPom,
		"com/example/lib/2.0-SNAPSHOT/lib-2.0-SNAPSHOT.pom":  snapshotPom,
		"com/example/lib/2.0-SNAPSHOT/lib-2.0-SNAPSHOT.jar":  "jar",
		"com/example/lib/2.0-SNAPSHOT/lib-2.0-SNAPSHOT.jar.md5": "ignored",
	})

	uploader := &fakeUploader{}
	p := newPublisher(uploader, ModeSnapshots, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Succeeded != 2 || tally.Skipped != 1 {
		t.Errorf("tally = %+v, want 2 succeeded (snapshot dir), 1 skipped (release dir)", tally)
	}
}

func TestDryRun_UploadsNothingButCounts(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, map[string]string{
		"com/example/lib/1.0/lib-1.0.pom": libPom,
		"com/example/lib/1.0/lib-1.0.jar": "jar",
	})

	p := newPublisher(&DryRun{Logger: testLogger()}, ModeAll, nexus.PolicyMixed)

	tally, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tally.Succeeded != 2 {
		t.Errorf("tally = %+v, want 2 succeeded", tally)
	}
}

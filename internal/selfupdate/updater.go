package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrBadVersion    = errors.New("target version is not a semantic version")
)

// DevVersion is the version string of builds without release ldflags.
const DevVersion = "(devel)"

// Stage is one step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the running version and an optional target tag.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update downloads, verifies and installs a release over the running
// binary. progress may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	report := func(s Stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: s, Message: fmt.Sprintf(format, args...)})
		}
	}

	if input.CurrentVersion == "" || input.CurrentVersion == DevVersion {
		return ErrDevBuild
	}
	tag, err := c.target(ctx, input, report)
	if err != nil {
		return err
	}

	a, err := platformAsset(c.goos, c.goarch)
	if err != nil {
		return err
	}

	report(StageDownload, "Downloading %s for %s/%s...", tag, c.goos, c.goarch)
	archive, err := c.fetch(ctx, c.releaseFileURL(tag, a.archive), "")
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	sums, err := c.fetch(ctx, c.releaseFileURL(tag, "checksums.txt"), "")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	if err := parseChecksums(sums).verify(a.archive, archive); err != nil {
		return err
	}

	report(StageExtract, "Extracting %s...", a.binary)
	bin, err := a.extract(archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	report(StageInstall, "Installing to %s...", target)
	if err := install(target, bin); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(StageDone, "Updated to %s", tag)
	return nil
}

// target is the explicit tag from input, or the latest release when it is
// newer than the running version.
func (c *Checker) target(ctx context.Context, input *UpdateInput, report func(Stage, string, ...any)) (string, error) {
	if tag := input.TargetVersion; tag != "" {
		if !semver.IsValid(tag) {
			return "", fmt.Errorf("%w: %q", ErrBadVersion, tag)
		}
		return tag, nil
	}

	report(StageCheck, "Checking for the latest version...")
	res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return res.LatestVersion, nil
}

func (c *Checker) releaseFileURL(tag, name string) string {
	base := strings.TrimRight(c.downloadBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", base, c.owner, c.repo, tag, name)
}

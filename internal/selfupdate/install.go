package selfupdate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// install replaces the executable at target with bin and keeps its file
// mode. The old executable is moved to target+".old" during the swap and
// put back if the new one cannot be moved into place.
func install(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := stage(filepath.Dir(target), bin, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(staged) }()

	backup := target + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("move current binary aside: %w", err)
	}
	if err := os.Rename(staged, target); err != nil {
		if restoreErr := os.Rename(backup, target); restoreErr != nil {
			return errors.Join(fmt.Errorf("install: %w", err), fmt.Errorf("restore previous binary: %w", restoreErr))
		}
		return fmt.Errorf("install: %w", err)
	}
	// Windows keeps the running executable locked, so the backup may stay.
	_ = os.Remove(backup)
	return nil
}

// stage writes bin to a temp file in dir and reads it back to make sure
// what landed on disk is what was verified.
func stage(dir string, bin []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".adaptiq-update-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	fail := func(format string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf(format, err)
	}

	if _, err := f.Write(bin); err != nil {
		return fail("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fail("close temp file: %w", err)
	}
	if err := os.Chmod(name, mode); err != nil {
		return fail("chmod temp file: %w", err)
	}

	written, err := os.ReadFile(name)
	if err != nil {
		return fail("re-read temp file: %w", err)
	}
	if sha256Hex(written) != sha256Hex(bin) {
		_ = os.Remove(name)
		return "", fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}
	return name, nil
}

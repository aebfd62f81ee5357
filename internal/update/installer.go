package update

import (
	"fmt"
	"os"
	"path/filepath"
)

// Installer replaces the running binary.
type Installer struct{}

// NewInstaller creates an installer.
func NewInstaller() *Installer {
	return &Installer{}
}

// Install swaps the current binary for the downloaded one. os.Rename is
// atomic on POSIX; the running process keeps the old file open and new
// invocations pick up the new binary.
func (i *Installer) Install(downloadedPath string) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("%w: get executable path: %w", ErrInstallFailed, err)
	}

	if err := os.Chmod(downloadedPath, 0o755); err != nil {
		return fmt.Errorf("%w: chmod failed: %w", ErrInstallFailed, err)
	}

	if err := os.Rename(downloadedPath, self); err != nil {
		return fmt.Errorf("%w: rename failed: %w", ErrInstallFailed, err)
	}

	return nil
}

// IsWritable reports whether the binary's directory accepts writes, so the
// command can suggest sudo before downloading anything.
func (i *Installer) IsWritable() (bool, error) {
	self, err := os.Executable()
	if err != nil {
		return false, err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(self), ".snowattach-update-test-")
	if err != nil {
		return false, nil
	}

	_ = tmpFile.Close()
	_ = os.Remove(tmpFile.Name())

	return true, nil
}

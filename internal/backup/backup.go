// Package backup preserves existing config files before they are
// overwritten.
package backup

import (
	"io"
	"io/fs"
	"os"

	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/internal/paths"
)

// Create copies path to its sibling backup file, replacing any earlier
// backup. It returns the backup path, or "" when path does not exist
// and there is nothing to preserve.
func Create(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, "opening %s for backup", path)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", path)
	}

	backupPath := paths.BackupPath(path)
	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", errors.Wrapf(err, "creating backup %s", backupPath)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", errors.Wrapf(err, "writing backup %s", backupPath)
	}
	if err := dst.Close(); err != nil {
		os.Remove(backupPath)
		return "", errors.Wrapf(err, "closing backup %s", backupPath)
	}

	return backupPath, nil
}

package fileedit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CreateBackup copies path to a sibling named
// <stem>.<YYMMDD>-<seq>.backup.<ext>, incrementing seq until the name
// is unused. The backup is a raw byte copy of the pre-write content.
func CreateBackup(path, fallbackStem, ext string) (string, error) {
	dateTag := time.Now().Format("060102")

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = fallbackStem
	}

	dir := filepath.Dir(path)
	for index := 0; ; index++ {
		backupPath := filepath.Join(dir, fmt.Sprintf("%s.%s-%d.backup.%s", stem, dateTag, index, ext))
		if _, err := os.Stat(backupPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("checking backup path: %w", err)
		}
		if err := copyFile(path, backupPath); err != nil {
			return "", fmt.Errorf("creating backup: %w", err)
		}
		return backupPath, nil
	}
}

// AtomicWrite writes data to path atomically using temp file + rename.
// Parent directories are created as needed.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Temp file in same directory (same filesystem for atomic rename)
	tmp, err := os.CreateTemp(dir, ".lmconf-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp to target: %w", err)
	}

	success = true
	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

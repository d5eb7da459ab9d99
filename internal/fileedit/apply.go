// Package fileedit implements the preview/confirm/backup/write pipeline
// used when updating harness configuration files.
package fileedit

import (
	"fmt"
	"os"

	. "github.com/roelfdiedericks/lmconf/internal/logging"
)

// Result is the outcome of an Apply run.
type Result int

const (
	// ResultApplied means the target file was written.
	ResultApplied Result = iota
	// ResultUnchanged means the new document was identical to the
	// existing one; nothing was prompted, backed up, or written.
	ResultUnchanged
	// ResultCancelled means the user declined the confirmation; the
	// target file is untouched and no backup was created.
	ResultCancelled
)

// Request describes one pending file update.
type Request struct {
	Path       string
	OldContent []byte
	NewContent []byte

	// BackupStem and BackupExt name the backup file when the target
	// path has no usable stem/extension of its own.
	BackupStem string
	BackupExt  string
}

// Apply runs diff -> confirm -> backup -> write for a single target.
// The diff covers only changed lines; an empty diff short-circuits with
// ResultUnchanged. A backup is created only when the target file exists
// and only after confirmation; backup failure aborts before the target
// is touched.
func Apply(req Request, confirm Confirmer) (Result, error) {
	changes := ChangedLines(string(req.OldContent), string(req.NewContent))
	if len(changes) == 0 {
		fmt.Println("No changes detected.")
		return ResultUnchanged, nil
	}

	RenderDiff(os.Stdout, req.Path, changes)

	apply, err := confirm.Confirm("Apply these changes?")
	if err != nil {
		return ResultCancelled, fmt.Errorf("confirmation prompt: %w", err)
	}
	if !apply {
		return ResultCancelled, nil
	}

	perm := os.FileMode(0644)
	exists := false
	if info, err := os.Stat(req.Path); err == nil {
		exists = true
		perm = info.Mode().Perm()
	}

	if exists {
		backupPath, err := CreateBackup(req.Path, req.BackupStem, req.BackupExt)
		if err != nil {
			return ResultCancelled, err
		}
		fmt.Printf("Created backup at %s\n", backupPath)
		L_debug("backup created", "path", backupPath)
	}

	if err := AtomicWrite(req.Path, req.NewContent, perm); err != nil {
		return ResultCancelled, fmt.Errorf("writing %s: %w", req.Path, err)
	}

	return ResultApplied, nil
}

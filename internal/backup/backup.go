// Package backup copies the ledger file out and swaps a candidate file in.
// Both operations close the active store first and reopen it afterwards;
// a failed restore puts the previous file back before reopening.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/pkg/logger"
	"github.com/google/uuid"
)

const Extension = ".db"

// Lifecycle is the part of the store manager backup needs.
type Lifecycle interface {
	Initialize(ctx context.Context) error
	Close() error
	Path() string
}

// Create copies the ledger file to dest and returns the path written. A
// ".db" suffix is appended when dest lacks one. The store is reopened
// whether or not the copy succeeds.
func Create(ctx context.Context, lc Lifecycle, dest string) (written string, err error) {
	log := logger.From(ctx)

	if !strings.EqualFold(filepath.Ext(dest), Extension) {
		dest += Extension
	}
	if sameFile(lc.Path(), dest) {
		return "", internal.NewValidationFieldError("destination", "backup destination is the active ledger file", internal.ErrCodeValidationFailed)
	}

	if err := lc.Close(); err != nil {
		return "", err
	}
	defer func() {
		if initErr := lc.Initialize(ctx); initErr != nil && err == nil {
			err = initErr
		}
	}()

	if err := copyFile(lc.Path(), dest); err != nil {
		log.Error("backup failed", "source", lc.Path(), "dest", dest, "error", err)
		return "", internal.NewInternalError("failed to write backup", err)
	}

	log.Info("backup written", "source", lc.Path(), "dest", dest)
	return dest, nil
}

// Restore replaces the ledger file with candidate. The current file is kept
// aside first; if replacing or reopening fails it is copied back and the
// store reopened on it, so the ledger is never left unreadable.
func Restore(ctx context.Context, lc Lifecycle, candidate string) error {
	log := logger.From(ctx).With("candidate", candidate)

	info, err := os.Stat(candidate)
	if err != nil {
		return internal.NewValidationFieldError("file", fmt.Sprintf("backup file %s cannot be read", candidate), internal.ErrCodeValidationFailed).WithCause(err)
	}
	if info.IsDir() {
		return internal.NewValidationFieldError("file", fmt.Sprintf("backup file %s is a directory", candidate), internal.ErrCodeValidationFailed)
	}
	if sameFile(lc.Path(), candidate) {
		return internal.NewValidationFieldError("file", "backup file is the active ledger file", internal.ErrCodeValidationFailed)
	}

	active := lc.Path()
	rollback := filepath.Join(filepath.Dir(active), fmt.Sprintf(".%s.%s.rollback", filepath.Base(active), uuid.NewString()))

	if err := lc.Close(); err != nil {
		return err
	}

	if err := copyFile(active, rollback); err != nil {
		log.Error("failed to keep rollback copy", "error", err)
		if initErr := lc.Initialize(ctx); initErr != nil {
			return initErr
		}
		return internal.NewInternalError("failed to keep a rollback copy of the ledger", err)
	}
	defer os.Remove(rollback)

	restoreErr := copyFile(candidate, active)
	if restoreErr == nil {
		restoreErr = lc.Initialize(ctx)
		if restoreErr == nil {
			log.Info("ledger restored", "path", active)
			return nil
		}
	}

	log.Warn("restore failed, rolling back", "error", restoreErr)
	if err := copyFile(rollback, active); err != nil {
		log.Error("rollback copy failed", "rollback", rollback, "error", err)
		return internal.NewInternalError(fmt.Sprintf("restore failed and the previous ledger could not be put back; it is kept at %s", rollback), err)
	}
	if err := lc.Initialize(ctx); err != nil {
		log.Error("failed to reopen ledger after rollback", "error", err)
		return err
	}

	return internal.NewValidationError("backup file could not be restored; the previous ledger was kept", internal.ErrCodeValidationFailed).WithCause(restoreErr)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

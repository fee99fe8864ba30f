package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const plansSubdir = "plans"

// PlanStore persists uploaded plan images on the local filesystem and
// hands back the relative link under which they are served.
type PlanStore struct {
	baseDir string
}

// NewPlanStore creates the upload directory if needed.
func NewPlanStore(baseDir string) (*PlanStore, error) {
	dir := filepath.Join(baseDir, plansSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &PlanStore{baseDir: baseDir}, nil
}

// Save writes the image under a generated unique name, preserving the
// original extension, and returns the relative serving path.
func (s *PlanStore) Save(originalName string, src io.Reader) (string, error) {
	filename := uuid.New().String() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.baseDir, plansSubdir, filename))
	if err != nil {
		return "", fmt.Errorf("create plan file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write plan file: %w", err)
	}
	return "/" + filepath.ToSlash(filepath.Join("uploads", plansSubdir, filename)), nil
}

// Remove deletes the file behind a relative link. A missing file is not
// an error; the database row is the source of truth.
func (s *PlanStore) Remove(imgLink string) error {
	rel := filepath.FromSlash(imgLink)
	// Links are stored as /uploads/plans/<name>; strip the serving prefix.
	rel = filepath.Base(rel)
	path := filepath.Join(s.baseDir, plansSubdir, rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove plan file: %w", err)
	}
	return nil
}

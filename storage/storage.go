package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore is the collaborator holding uploaded team documents. Paths it
// returns are namespace-relative and stable, so they can be persisted on the
// Team record and later served or deleted.
type FileStore interface {
	Save(header *multipart.FileHeader, namespace string) (string, error)
	Remove(path string) error
}

// DiskStore keeps files on the local filesystem under a root upload
// directory, one subdirectory per namespace.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (d *DiskStore) Save(header *multipart.FileHeader, namespace string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(d.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// Client file names are untrusted; only the extension is kept.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return namespace + "/" + name, nil
}

func (d *DiskStore) Remove(path string) error {
	full := filepath.Join(d.root, filepath.FromSlash(path))

	// Refuse paths that climb out of the upload root.
	rel, err := filepath.Rel(d.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid document path %q", path)
	}

	return os.Remove(full)
}

// Package storage is the output sink: it owns the destination directory
// and writes downloaded images with deterministic, collision-free names.
package storage

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bingrab/pkg/errors"
)

// imageExtensions are the file extensions accepted from source URLs.
// Anything else falls back to .jpg.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true, ".svg": true, ".tiff": true,
}

// Manager handles file storage operations for one run.
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager rooted at outputDir, creating the
// directory tree if missing. A failure here is fatal to the run: nothing
// can proceed without a writable destination.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Newf(errors.ErrorTypeFilesystem,
			"failed to create output directory %s: %v", outputDir, err)
	}
	return &Manager{outputDir: outputDir}, nil
}

// FilenameForURL derives the destination filename for a source URL:
// the md5 hex of the URL plus the extension from its path. The name is
// deterministic and unique per distinct URL, so it can be assigned at
// dispatch time and never depends on download completion order.
func FilenameForURL(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	name := hex.EncodeToString(sum[:])

	ext := ".jpg"
	if u, err := url.Parse(rawURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); imageExtensions[e] {
			ext = e
		}
	}
	return name + ext
}

// Path returns the absolute destination path for a filename.
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.outputDir, filename)
}

// OutputDir returns the managed directory.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// SaveImage writes image data to the named file. The write goes through a
// temp file and an atomic rename so a failed download never leaves a
// truncated image behind.
func (m *Manager) SaveImage(r io.Reader, filename string) error {
	dest := m.Path(filename)
	tempFile := dest + ".tmp"

	out, err := os.Create(tempFile)
	if err != nil {
		return errors.Newf(errors.ErrorTypeFilesystem,
			"failed to create temporary file: %v", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return errors.Newf(errors.ErrorTypeFilesystem,
			"failed to write image data: %v", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return errors.Newf(errors.ErrorTypeFilesystem,
			"failed to close file: %v", closeErr)
	}

	if err := os.Rename(tempFile, dest); err != nil {
		os.Remove(tempFile)
		return errors.Newf(errors.ErrorTypeFilesystem,
			"failed to rename temporary file: %v", err)
	}

	return nil
}

package docfold

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip unpacks a zip archive returned by a batch or split-zip operation
// into one buffer per entry, preserving archive order. Entry names are
// ignored; callers get positional results matching the order of their
// request data.
func ExtractZip(data []byte) ([][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docfold: open zip: %w", err)
	}

	out := make([][]byte, 0, len(zr.File))
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("docfold: open zip entry %s: %w", zf.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("docfold: read zip entry %s: %w", zf.Name, err)
		}
		out = append(out, content)
	}
	return out, nil
}

// ExtractZipToDir unpacks a zip archive under dir, recreating each entry's
// relative path, creating intermediate directories and overwriting existing
// files. Entries whose path would escape dir are rejected. Files written
// before a failure are left in place.
func ExtractZipToDir(data []byte, dir string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("docfold: open zip: %w", err)
	}

	root := filepath.Clean(dir)
	for _, zf := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(zf.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("docfold: zip entry %s escapes %s", zf.Name, dir)
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("docfold: open zip entry %s: %w", zf.Name, err)
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("docfold: write zip entry %s: %w", zf.Name, err)
		}
	}
	return nil
}

package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const defaultMode os.FileMode = 0o644

// WriteFile replaces path with content. When fs can change file modes the
// write is atomic: content goes to a temp file in the same directory, which
// is then renamed over path. Otherwise the file is truncated in place.
func WriteFile(fs billy.Filesystem, path string, content []byte) error {
	ch, ok := fs.(billy.Change)
	if !ok {
		return util.WriteFile(fs, path, content, defaultMode)
	}

	dir := filepath.Dir(path)
	tmp, err := fs.TempFile(dir, ".initmaker-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	// Temp files are private; keep the mode of an existing index instead.
	mode := defaultMode
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := ch.Chmod(tmpName, mode); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("chmod temp: %w", err)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}
	return nil
}

// IsCurrent reports whether path already holds exactly content.
// A missing file is not current.
func IsCurrent(fs billy.Filesystem, path string, content []byte) (bool, error) {
	existing, err := util.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, content), nil
}

package boardfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one annotation file per name under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(strings.TrimSpace(name)))
}

func (s *FileStore) Load(ctx context.Context, name string) (*Document, []Warning, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Save renders the whole document before touching the file, so a failed
// render leaves the previous save intact.
func (s *FileStore) Save(ctx context.Context, name string, doc *Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".board-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(name))
}

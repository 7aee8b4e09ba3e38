package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type osStorage struct {
	root string
}

// NewOSStorage returns a [Storage] over the directory root.
func NewOSStorage(root string) Storage {
	return &osStorage{root: filepath.Clean(root)}
}

func (s *osStorage) Root() string {
	return s.root
}

func (s *osStorage) abs(rel string) (string, error) {
	p, err := NormalizePath(rel)
	if err != nil {
		return "", fmt.Errorf("%q: %w", rel, err)
	}
	return filepath.Join(s.root, filepath.FromSlash(p)), nil
}

func (s *osStorage) ReadFile(rel string) ([]byte, error) {
	p, err := s.abs(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func (s *osStorage) WriteFile(rel string, data []byte) error {
	p, err := s.abs(rel)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *osStorage) ListDir(rel string) ([]DirEntry, error) {
	p, err := s.abs(rel)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}

	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *osStorage) Stat(rel string) (FileStat, error) {
	p, err := s.abs(rel)
	if err != nil {
		return FileStat{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return FileStat{}, err
	}
	return FileStat{Size: info.Size(), ModTime: info.ModTime(), IsDir: info.IsDir()}, nil
}

func (s *osStorage) Remove(rel string) error {
	p, err := s.abs(rel)
	if err != nil {
		return err
	}
	if err = os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

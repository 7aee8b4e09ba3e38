package vault

import (
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStorage is an in-memory [Storage]. Directories exist implicitly for every
// stored file; FailDirs makes ListDir fail for the listed directories.
type MemStorage struct {
	mu       sync.RWMutex
	root     string
	files    map[string]memFile
	FailDirs map[string]error
	now      func() time.Time
}

type memFile struct {
	data    []byte
	modTime time.Time
}

// NewMemStorage returns an empty in-memory storage reporting root as its root.
func NewMemStorage(root string) *MemStorage {
	return &MemStorage{
		root:     root,
		files:    make(map[string]memFile),
		FailDirs: make(map[string]error),
		now:      time.Now,
	}
}

func (m *MemStorage) Root() string {
	return m.root
}

func (m *MemStorage) ReadFile(rel string) ([]byte, error) {
	p, err := NormalizePath(rel)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: rel, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.data...), nil
}

func (m *MemStorage) WriteFile(rel string, data []byte) error {
	p, err := NormalizePath(rel)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = memFile{data: append([]byte(nil), data...), modTime: m.now()}
	return nil
}

func (m *MemStorage) ListDir(rel string) ([]DirEntry, error) {
	dir, err := NormalizePath(rel)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.FailDirs[dir]; ok {
		return nil, err
	}

	prefix := dir
	if prefix != "" {
		prefix += "/"
	}
	seen := make(map[string]bool)
	for p := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, _, isDir := strings.Cut(rest, "/")
		seen[name] = seen[name] || isDir
	}
	if len(seen) == 0 && dir != "" {
		return nil, &fs.PathError{Op: "readdir", Path: rel, Err: fs.ErrNotExist}
	}

	out := make([]DirEntry, 0, len(seen))
	for name, isDir := range seen {
		out = append(out, DirEntry{Name: name, IsDir: isDir})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStorage) Stat(rel string) (FileStat, error) {
	p, err := NormalizePath(rel)
	if err != nil {
		return FileStat{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[p]
	if !ok {
		return FileStat{}, &fs.PathError{Op: "stat", Path: rel, Err: fs.ErrNotExist}
	}
	return FileStat{Size: int64(len(f.data)), ModTime: f.modTime}, nil
}

func (m *MemStorage) Remove(rel string) error {
	p, err := NormalizePath(rel)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, p)
	return nil
}

// Paths returns all stored file paths, sorted.
func (m *MemStorage) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

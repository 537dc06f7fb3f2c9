package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Library is a named set of candidate files the resolver searches through.
// Implementations must enumerate names in lexicographic order so that
// "first match wins" is deterministic across platforms.
type Library interface {
	// List returns the candidate file names.
	List() ([]string, error)
	// ReadFile returns the content of one candidate.
	ReadFile(name string) ([]byte, error)
	// Describe returns a human-readable location for error messages.
	Describe() string
}

// DirLibrary serves files from a directory on disk, typically the user's
// shared templates folder.
type DirLibrary struct {
	dir string
}

// NewDirLibrary returns a Library over the given directory.
func NewDirLibrary(dir string) *DirLibrary {
	return &DirLibrary{dir: dir}
}

func (l *DirLibrary) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", l.dir, err)
	}

	// os.ReadDir already sorts by name.
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (l *DirLibrary) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (l *DirLibrary) Describe() string {
	return l.dir
}

// MemLibrary serves files from an in-memory set of named blobs, used when
// the caller uploads template and resume files directly.
type MemLibrary struct {
	files map[string][]byte
}

// NewMemLibrary returns a Library over the given named blobs. The map is
// used as-is; callers must not mutate it afterwards.
func NewMemLibrary(files map[string][]byte) *MemLibrary {
	return &MemLibrary{files: files}
}

func (l *MemLibrary) List() ([]string, error) {
	names := make([]string, 0, len(l.files))
	for name := range l.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *MemLibrary) ReadFile(name string) ([]byte, error) {
	data, ok := l.files[name]
	if !ok {
		return nil, fmt.Errorf("no such uploaded file: %s", name)
	}
	return data, nil
}

func (l *MemLibrary) Describe() string {
	return "uploaded files"
}

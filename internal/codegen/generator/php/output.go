package php

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Output is where generated files go.
type Output interface {
	// Create opens path for writing, truncating any previous content.
	Create(path string) (io.WriteCloser, error)
	// Exists reports whether path is already present.
	Exists(path string) (bool, error)
}

// DirOutput writes to the local filesystem, creating parent directories.
type DirOutput struct{}

func (DirOutput) Create(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to write to %s: %w", path, err)
	}
	return f, nil
}

func (DirOutput) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// MemOutput keeps generated files in memory. Exists falls through to Base so
// that "create only if absent" decisions match what a real run would do.
type MemOutput struct {
	Base  Output
	files map[string][]byte
}

// NewMemOutput returns an in-memory output layered over base (may be nil).
func NewMemOutput(base Output) *MemOutput {
	return &MemOutput{Base: base, files: make(map[string][]byte)}
}

func (m *MemOutput) Create(path string) (io.WriteCloser, error) {
	return &memFile{out: m, path: filepath.Clean(path)}, nil
}

func (m *MemOutput) Exists(path string) (bool, error) {
	if _, ok := m.files[filepath.Clean(path)]; ok {
		return true, nil
	}
	if m.Base == nil {
		return false, nil
	}
	return m.Base.Exists(path)
}

// Files returns the paths written so far, sorted.
func (m *MemOutput) Files() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Content returns the bytes written to path.
func (m *MemOutput) Content(path string) ([]byte, bool) {
	b, ok := m.files[filepath.Clean(path)]
	return b, ok
}

type memFile struct {
	out  *MemOutput
	path string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) { return f.buf.Write(p) }

func (f *memFile) Close() error {
	f.out.files[f.path] = f.buf.Bytes()
	return nil
}

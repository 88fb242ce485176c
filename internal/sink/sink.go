// Package sink persists generated files.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sink stores named file contents.
type Sink interface {
	Write(name string, content []byte) error
}

// Dir writes files under a root directory, creating directories as needed.
type Dir struct {
	Root string
}

// NewDir returns a sink rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Path returns the full path a name is written to.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.Root, name)
}

// Write implements Sink.
func (d *Dir) Write(name string, content []byte) error {
	path := d.Path(name)

	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}
	return os.WriteFile(path, content, 0644)
}

// Memory keeps written files in memory. It is safe for concurrent use,
// and the zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Write implements Sink. Content is copied.
func (m *Memory) Write(name string, content []byte) error {
	buf := make([]byte, len(content))
	copy(buf, content)

	m.mu.Lock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = buf
	m.mu.Unlock()
	return nil
}

// Get returns the content written under name.
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[name]
	return b, ok
}

// Names returns the written names in sorted order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package patch stores menu snapshots as JSON documents, one file per patch
// name.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/patchmenu/internal/logging/events"
)

// DefaultDir is used when a store is created without a directory.
const DefaultDir = "presets"

const extension = ".json"

var (
	// ErrMissing reports that no file exists for the patch name.
	ErrMissing = errors.New("patch not found")
	// ErrEmpty reports a file without any data.
	ErrEmpty = errors.New("patch is empty")
	// ErrShape reports a document that is not a nested array.
	ErrShape = errors.New("patch is not an array")
	// ErrName reports a name that cannot be used as a file name.
	ErrName = errors.New("invalid patch name")
)

// Store reads and writes patches under Dir.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir, or DefaultDir when dir is empty.
func NewStore(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	return &Store{Dir: dir}
}

func (s *Store) dir() string {
	if s == nil || s.Dir == "" {
		return DefaultDir
	}
	return s.Dir
}

// Path returns the file backing name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir(), name+extension)
}

// rename is swapped in tests to fail the final step of a write.
var rename = os.Rename

// Write stores data, which must be JSON encodable, as name. The directory is
// created when missing. The document is written to a temporary file and
// renamed over the old one, so a failed write leaves the previous patch intact.
func (s *Store) Write(name string, data any) error {
	if err := validName(name); err != nil {
		return err
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode patch %q: %w", name, err)
	}
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return fmt.Errorf("create patch dir: %w", err)
	}
	path := s.Path(name)
	if err := writeFile(path, encoded); err != nil {
		return fmt.Errorf("write patch %q: %w", name, err)
	}
	events.Patch.Write(name, path)
	return nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return rename(tmp.Name(), path)
}

// Read loads the document stored as name. Numbers decode as float64 and
// arrays as []any. Documents without data (null, [], {}, 0, false, "") fail
// with ErrEmpty and any other non-array document with ErrShape.
func (s *Store) Read(name string) (any, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	path := s.Path(name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("read patch %q: %w", name, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode patch %q: %w", name, err)
	}
	if blank(data) {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if _, ok := data.([]any); !ok {
		return nil, fmt.Errorf("%w: %s", ErrShape, path)
	}
	events.Patch.Read(name, path)
	return data, nil
}

// List returns the names of stored patches in sorted order. A missing
// directory yields no names.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list patches: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), extension))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the patch stored as name.
func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.Remove(s.Path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissing, name)
		}
		return fmt.Errorf("delete patch %q: %w", name, err)
	}
	return nil
}

func blank(data any) bool {
	switch v := data.(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case float64:
		return v == 0
	case bool:
		return !v
	case string:
		return v == ""
	}
	return false
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrName, name)
	}
	return nil
}

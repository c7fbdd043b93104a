package challenge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("challenge not found")
	ErrCorrupt  = errors.New("challenge file is corrupt")
)

const timestampLayout = "2006-01-02 15:04:05"

// Store keeps one JSON document per challenge under a single directory.
// Single-user, single-process; last writer wins.
type Store struct {
	dir string
}

// Summary is one row of List output.
type Summary struct {
	Name    string
	Type    string
	Updated string
}

func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".htbcli", "challenges")
	}
	return filepath.Join(home, ".htbcli", "challenges")
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Create persists a fresh context. Name and Updated are always overwritten;
// checking for an existing challenge first is the caller's job.
func (s *Store) Create(name string, ctx Context) error {
	return s.write(name, ctx)
}

func (s *Store) Load(name string) (Context, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Context{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Context{}, fmt.Errorf("read challenge %s: %w", name, err)
	}
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return Context{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return ctx, nil
}

// Save overwrites the stored document. Name and Updated are stamped
// unconditionally so the file always matches its storage key.
func (s *Store) Save(name string, ctx Context) error {
	return s.write(name, ctx)
}

func (s *Store) write(name string, ctx Context) error {
	ctx.Name = name
	ctx.Updated = time.Now().Format(timestampLayout)
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal challenge %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write challenge %s: %w", name, err)
	}
	return nil
}

// List enumerates all stored challenges in lexicographic filename order.
// Files that fail to parse are skipped, not reported.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	items := []Summary{}
	for _, filename := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, filename))
		if err != nil {
			continue
		}
		var ctx Context
		if err := json.Unmarshal(data, &ctx); err != nil {
			continue
		}
		name := ctx.Name
		if name == "" {
			name = strings.TrimSuffix(filename, ".json")
		}
		items = append(items, Summary{Name: name, Type: ctx.Type, Updated: ctx.Updated})
	}
	return items, nil
}

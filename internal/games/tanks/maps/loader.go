package maps

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.yaml
var embedded embed.FS

// Loader handles loading maps from a file system.
type Loader struct {
	fsys fs.FS
	name string
}

// NewLoader creates a loader rooted at a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), name: root}
}

// NewFSLoader creates a loader over any file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, name: "fs"}
}

// Builtin returns a loader over the maps shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("maps: embedded data: %v", err))
	}
	return &Loader{fsys: sub, name: "builtin"}
}

// LoadAll recursively scans and loads all map files.
// Returns maps sorted by ID for deterministic ordering. Invalid files are
// skipped; use LoadFile to see why a file is rejected.
func (l *Loader) LoadAll() ([]Map, error) {
	var maps []Map

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		m, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walking %s: %w", l.name, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// LoadFile loads a single map file.
func (l *Loader) LoadFile(p string) (Map, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading %s: %w", p, err)
	}

	m, err := Parse(data)
	if err != nil {
		return Map{}, fmt.Errorf("maps: parsing %s: %w", p, err)
	}
	m.FilePath = p
	return m, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}

	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("maps: map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

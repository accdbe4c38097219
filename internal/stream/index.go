package stream

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps normalized asset names to filesystem paths.
// A relative path match wins over a bare file-name match.
type Index struct {
	byPath map[string]string // "rooms/ydan_0.prm" → full path
	byBase map[string]string // "ydan_0.prm" → full path
}

// Normalize turns a disc-style name ("ROOMS\YDAN_0.PRM;1") into an index key ("rooms/ydan_0.prm").
func Normalize(name string) string {
	if i := strings.LastIndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimLeft(name, "/")
	return strings.ToLower(name)
}

// BuildIndex scans dir recursively.
func BuildIndex(dir string) *Index {
	idx := &Index{byPath: make(map[string]string), byBase: make(map[string]string)}
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		idx.byPath[Normalize(filepath.ToSlash(rel))] = path
		base := strings.ToLower(d.Name())
		if _, exists := idx.byBase[base]; !exists {
			idx.byBase[base] = path
		}
		return nil
	})
	return idx
}

// ResolvePath returns the file behind name, or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	key := Normalize(name)
	if p, ok := idx.byPath[key]; ok {
		return p, true
	}
	p, ok := idx.byBase[key[strings.LastIndexByte(key, '/')+1:]]
	return p, ok
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	return len(idx.byPath)
}

// Package resources bundles the baseline property files and resolves named
// resources against an optional configuration directory.
package resources

import (
	"embed"
	"errors"
	"io/fs"
	"os"
)

// DefaultsName is the bundled baseline resource.
const DefaultsName = "test.properties"

//go:embed test.properties
var bundled embed.FS

// Bundled returns the embedded resources only.
func Bundled() fs.FS {
	return bundled
}

// FS returns a filesystem in which files under dir shadow the bundled ones.
// An empty dir yields the bundled resources alone.
func FS(dir string) fs.FS {
	if dir == "" {
		return bundled
	}
	return layered{layers: []fs.FS{os.DirFS(dir), bundled}}
}

// layered resolves a name against each layer in turn. Only a not-exist error
// falls through to the next layer.
type layered struct {
	layers []fs.FS
}

func (l layered) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, layer := range l.layers {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

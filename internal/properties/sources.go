package properties

import (
	"io/fs"
	"os"
	"strings"
)

// ResourceSource loads a named resource from a filesystem.
type ResourceSource struct {
	FS       fs.FS
	Name     string
	Optional bool
}

// Load implements Source.
func (s ResourceSource) Load() (Properties, error) {
	return Load(s.FS, s.Name, s.Optional)
}

// EnvSource exposes environment variables as properties. A nil Environ reads
// the current process environment at load time.
type EnvSource struct {
	Environ []string
	Prefix  string
}

// Load implements Source.
func (s EnvSource) Load() (Properties, error) {
	environ := s.Environ
	if environ == nil {
		environ = os.Environ()
	}
	return FromEnviron(environ, s.Prefix), nil
}

// MapSource is an in-memory source, typically command-line defines.
type MapSource map[string]string

// Load implements Source.
func (s MapSource) Load() (Properties, error) {
	return Properties(s).Clone(), nil
}

// FromEnviron converts NAME=value pairs into properties. Every variable is kept
// under its own name. When prefix is set, PREFIX_FOO_BAR is additionally
// exposed as foo.bar so dotted keys can be overridden from the environment.
func FromEnviron(environ []string, prefix string) Properties {
	out := make(Properties, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		out[name] = value

		if prefix == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		if key := envKey(strings.TrimPrefix(name, prefix)); key != "" {
			out[key] = value
		}
	}
	return out
}

func envKey(name string) string {
	name = strings.Trim(name, "_")
	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}

package properties

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Load reads the named resource from fsys and parses it according to its
// extension: ".yaml" and ".yml" are YAML documents, anything else is read as a
// Java-style properties file.
//
// A missing resource yields ErrResourceMissing unless optional is set, in which
// case an empty mapping is returned. Malformed content yields ErrParse either way.
func Load(fsys fs.FS, name string, optional bool) (Properties, error) {
	if name == "" {
		return Properties{}, nil
	}

	if fsys == nil {
		if optional {
			return Properties{}, nil
		}
		return nil, fmt.Errorf("%w: make sure the '%s' file is present", ErrResourceMissing, name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if optional {
				return Properties{}, nil
			}
			return nil, fmt.Errorf("%w: make sure the '%s' file is present", ErrResourceMissing, name)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrResourceMissing, name, err)
	}

	props, err := parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	return props, nil
}

func parse(name string, data []byte) (Properties, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseProperties(data)
	}
}

func parseProperties(data []byte) (Properties, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	parsed, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}

	out := make(Properties, parsed.Len())
	for _, key := range parsed.Keys() {
		value, _ := parsed.Get(key)
		out[key] = value
	}
	return out, nil
}

func parseYAML(data []byte) (Properties, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	out := make(Properties)
	if err := flatten(out, "", doc); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten writes nested YAML mappings as dotted keys. Sequences are joined with
// commas and a null value becomes an empty string. Two paths that flatten to
// the same key are an error.
func flatten(out Properties, prefix string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := flatten(out, joinKey(prefix, key), v[key]); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		nested := make(map[string]any, len(v))
		for key, child := range v {
			nested[fmt.Sprint(key)] = child
		}
		return flatten(out, prefix, nested)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, scalar(item))
		}
		return put(out, prefix, strings.Join(parts, ","))
	default:
		return put(out, prefix, scalar(v))
	}
}

func put(out Properties, key, value string) error {
	if _, ok := out[key]; ok {
		return fmt.Errorf("duplicate key %q", key)
	}
	out[key] = value
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

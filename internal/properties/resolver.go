package properties

import "fmt"

// Merge layers sources in order onto an empty accumulator and returns it.
//
// A value from a later source replaces the accumulated one when the key has not
// been seen yet, when the accumulated value is empty, or when the incoming value
// is non-empty. An empty later value therefore never blanks out an earlier
// non-empty one, which is not the same as last-write-wins.
func Merge(sources ...Properties) Properties {
	target := make(Properties)
	for _, source := range sources {
		for key, value := range source {
			current, ok := target[key]
			if !ok || current == "" || value != "" {
				target[key] = value
			}
		}
	}
	return target
}

// Resolve loads every source in order and merges the results. The first load
// failure aborts resolution.
func Resolve(sources ...Source) (Properties, error) {
	loaded := make([]Properties, 0, len(sources))
	for i, source := range sources {
		props, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		loaded = append(loaded, props)
	}
	return Merge(loaded...), nil
}

// Package cases registers the browser suites of the site under test.
package cases

import (
	"errors"
	"fmt"
	"slices"

	"github.com/eugenenazirov/webui-harness/internal/suite"
)

// ErrUnknownSuite indicates no suite is registered under a requested name.
var ErrUnknownSuite = errors.New("unknown suite")

// Suite names.
const (
	NavigationSuite = "navigation"
	TopicsSuite     = "topics"
	LoginSuite      = "login"
)

// All returns every registered suite in run order.
func All() []suite.Suite {
	return []suite.Suite{Navigation(), Topics(), Login()}
}

// Names returns the registered suite names in run order.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	return names
}

// Lookup returns the named suites in the order given, or all of them when no
// name is given.
func Lookup(names ...string) ([]suite.Suite, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	out := make([]suite.Suite, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(s suite.Suite) bool { return s.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSuite, name, Names())
		}
		out = append(out, all[i])
	}
	return out, nil
}

package config

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/properties"
	"github.com/eugenenazirov/webui-harness/internal/resources"
	"github.com/eugenenazirov/webui-harness/internal/storage"
)

// Registry owns the merged property mapping. All methods are safe for
// concurrent use; Extend and Set are serialized by the underlying store.
type Registry struct {
	store  *storage.MemoryStore
	fsys   fs.FS
	logger *zap.Logger
}

var _ storage.Store = (*Registry)(nil)

// NewRegistry wraps an already merged mapping. fsys is used by ExtendFrom and
// may be nil.
func NewRegistry(initial properties.Properties, logger *zap.Logger, fsys fs.FS) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:  storage.NewMemoryStore(initial),
		fsys:   fsys,
		logger: logger,
	}
}

// Bootstrap resolves the property sources described by s, lowest precedence
// first: the defaults resource (required), the custom resource (optional), the
// process environment and the CLI defines. The merged result is logged.
func Bootstrap(s Settings, logger *zap.Logger) (*Registry, error) {
	fsys := resources.FS(s.ConfigDir)

	merged, err := properties.Resolve(
		properties.ResourceSource{FS: fsys, Name: s.DefaultsResource},
		properties.ResourceSource{FS: fsys, Name: s.CustomResource, Optional: true},
		properties.EnvSource{Prefix: s.EnvPrefix},
		properties.MapSource(s.Defines),
	)
	if err != nil {
		return nil, fmt.Errorf("resolve properties: %w", err)
	}

	reg := NewRegistry(merged, logger, fsys)
	reg.Dump()
	return reg, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry

	exit = os.Exit
)

// Init bootstraps the process-wide registry from s on the first call and
// returns it. Later calls return the existing registry and ignore s.
// A bootstrap failure is logged and terminates the process.
func Init(s Settings, logger *zap.Logger) *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = mustBootstrap(logger, func() (*Registry, error) {
			return Bootstrap(s, logger)
		})
	})
	return defaultRegistry
}

// Default returns the process-wide registry, bootstrapping it from the
// environment with the global zap logger if Init has not run yet.
func Default() *Registry {
	defaultOnce.Do(func() {
		logger := zap.L()
		defaultRegistry = mustBootstrap(logger, func() (*Registry, error) {
			s, err := Load(nil)
			if err != nil {
				return nil, err
			}
			return Bootstrap(s, logger)
		})
	})
	return defaultRegistry
}

func mustBootstrap(logger *zap.Logger, build func() (*Registry, error)) *Registry {
	reg, err := build()
	if err != nil {
		if logger == nil {
			logger = zap.L()
		}
		logger.Error("configuration initialization failed", zap.Error(err))
		exit(1)
	}
	return reg
}

// Lookup returns the current value for key.
func (r *Registry) Lookup(key string) (string, bool) {
	return r.store.Lookup(key)
}

// Set writes value under key.
func (r *Registry) Set(key, value string) {
	r.store.Set(key, value)
}

// Snapshot returns a copy of the merged mapping.
func (r *Registry) Snapshot() properties.Properties {
	return r.store.Snapshot()
}

// Len reports the number of keys.
func (r *Registry) Len() int {
	return r.store.Len()
}

// Property returns a handle for key bound to this registry.
func (r *Registry) Property(key string) *Property {
	return NewProperty(key, r, WithLogger(r.logger))
}

// Extend merges src on top of the current mapping with the same rule as the
// bootstrap: non-empty values in src win, empty ones only fill gaps.
func (r *Registry) Extend(src properties.Properties) {
	r.store.Update(func(current properties.Properties) properties.Properties {
		return properties.Merge(current, src)
	})
}

// ExtendFrom loads the named resource, which must exist, and extends the
// registry with it.
func (r *Registry) ExtendFrom(name string) error {
	src, err := properties.Load(r.fsys, name, false)
	if err != nil {
		return fmt.Errorf("extend from %s: %w", name, err)
	}
	r.Extend(src)
	return nil
}

// Dump logs every property with long values truncated.
func (r *Registry) Dump() {
	Dump(r.logger, r.Snapshot())
}

// DriverEnvironment returns the required driver environment, local or remote.
func (r *Registry) DriverEnvironment() (string, error) {
	return r.Property(KeyDriverEnvironment).ExpectOneOf(DriverLocal, DriverRemote)
}

// BrowserName returns the required browser name.
func (r *Registry) BrowserName() (string, error) {
	return r.Property(KeyBrowserName).Expect()
}

// RemoteURL returns the required remote WebDriver URL.
func (r *Registry) RemoteURL() (string, error) {
	return r.Property(KeyRemoteURL).Expect()
}

// AppEnv returns a handle for the application environment.
func (r *Registry) AppEnv() *Property {
	return r.Property(KeyAppEnv).Describe("application environment")
}

// AppName returns a handle for the application name.
func (r *Registry) AppName() *Property {
	return r.Property(KeyAppName).Describe("application name")
}

// AppURL returns a handle for the base URL under test.
func (r *Registry) AppURL() *Property {
	return r.Property(KeyAppURL).Describe("base URL under test")
}

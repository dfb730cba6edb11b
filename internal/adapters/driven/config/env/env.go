// Package env overlays environment variables on a configuration store.
//
// Overrides are read once, win over the wrapped store on every read and are
// never written back to it.
package env

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
)

// Overrides lists the environment variables and the config keys they shadow.
// Unset variables leave their pointer nil.
type Overrides struct {
	FillMode       *string  `env:"PROMPTSMITH_FILL_MODE"`
	Alpha          *float64 `env:"PROMPTSMITH_ALPHA"`
	RecursionLimit *int     `env:"PROMPTSMITH_RECURSION_LIMIT"`
	Transitive     *bool    `env:"PROMPTSMITH_TRANSITIVE"`
	PacksDir       *string  `env:"PROMPTSMITH_PACKS_DIR"`
	GitHubToken    *string  `env:"GITHUB_TOKEN"`
	GDriveAPIKey   *string  `env:"PROMPTSMITH_GDRIVE_API_KEY"`
	ServerAddr     *string  `env:"PROMPTSMITH_SERVER_ADDR"`
	AllowedOrigins []string `env:"PROMPTSMITH_ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses the process environment.
func Load() (Overrides, error) {
	return parse(nil)
}

// parse reads overrides from environ, or the process environment when nil.
func parse(environ map[string]string) (Overrides, error) {
	var o Overrides
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Values returns the set overrides keyed by config key.
func (o Overrides) Values() map[string]any {
	out := make(map[string]any)
	if o.FillMode != nil {
		out["compose.fill_mode"] = strings.ToLower(*o.FillMode)
	}
	if o.Alpha != nil {
		out["compose.alpha"] = *o.Alpha
	}
	if o.RecursionLimit != nil {
		out["compose.recursion_limit"] = *o.RecursionLimit
	}
	if o.Transitive != nil {
		out["constraints.transitive"] = *o.Transitive
	}
	if o.PacksDir != nil {
		out["packs.dir"] = *o.PacksDir
	}
	if o.GitHubToken != nil {
		out["github.token"] = *o.GitHubToken
	}
	if o.GDriveAPIKey != nil {
		out["gdrive.api_key"] = *o.GDriveAPIKey
	}
	if o.ServerAddr != nil {
		out["server.addr"] = *o.ServerAddr
	}
	if len(o.AllowedOrigins) > 0 {
		out["server.allowed_origins"] = o.AllowedOrigins
	}
	return out
}

// Ensure Store implements the interface.
var _ driven.ConfigStore = (*Store)(nil)

// Store wraps a ConfigStore with environment overrides.
type Store struct {
	base      driven.ConfigStore
	overrides map[string]any
}

// Wrap reads the process environment and overlays it on base.
func Wrap(base driven.ConfigStore) (*Store, error) {
	o, err := Load()
	if err != nil {
		return nil, err
	}
	return NewStore(base, o), nil
}

// NewStore overlays o on base.
func NewStore(base driven.ConfigStore, o Overrides) *Store {
	return &Store{base: base, overrides: o.Values()}
}

// Overridden reports whether key is shadowed by an environment variable.
func (s *Store) Overridden(key string) bool {
	_, ok := s.overrides[key]
	return ok
}

// Get returns the override for key, else the wrapped value.
func (s *Store) Get(key string) (any, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *Store) GetString(key string) string {
	if v, ok := s.overrides[key].(string); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *Store) GetInt(key string) int {
	if v, ok := s.overrides[key].(int); ok {
		return v
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a floating-point configuration value.
func (s *Store) GetFloat(key string) float64 {
	if v, ok := s.overrides[key].(float64); ok {
		return v
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (s *Store) GetBool(key string) bool {
	if v, ok := s.overrides[key].(bool); ok {
		return v
	}
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (s *Store) GetStringSlice(key string) []string {
	if v, ok := s.overrides[key].([]string); ok {
		return v
	}
	return s.base.GetStringSlice(key)
}

// Set writes to the wrapped store. An active override keeps shadowing the new value.
func (s *Store) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the wrapped store.
func (s *Store) Save() error { return s.base.Save() }

// Load reloads the wrapped store.
func (s *Store) Load() error { return s.base.Load() }

// Path returns the wrapped store's path.
func (s *Store) Path() string { return s.base.Path() }

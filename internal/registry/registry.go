package registry

import (
	"maps"
	"os"
	"sync"
)

// Registry provides access to the process settings.
type Registry interface {
	Get(key string) (string, bool)
	Set(key, value string)
	All() map[string]string
}

// Option configures New.
type Option func(*options)

type options struct {
	lookupEnv func(string) (string, bool)
}

// WithLookupEnv overrides the environment source consulted by New (primarily for tests).
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = lookup
	}
}

// Memory keeps settings in-memory and guards access with a RWMutex.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// New seeds the registry with the defaults derived from baseOrigin and then
// replaces each default with a same-named environment variable when one is
// set and non-empty. The environment is consulted only here.
func New(baseOrigin string, opts ...Option) *Memory {
	o := options{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}

	values := Defaults(baseOrigin)
	for key := range values {
		if value, ok := o.lookupEnv(key); ok && value != "" {
			values[key] = value
		}
	}

	return &Memory{values: values}
}

// Get returns the current value for key and whether the key is present.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key, creating the key when it does not exist yet.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
}

// All returns a copy of every stored setting.
func (m *Memory) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.values)
}

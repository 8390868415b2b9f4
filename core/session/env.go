package session

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Environ is the session's environment variable store. Unlike the rest
// of the session state it locks internally: prompt rendering and
// hosted commands read it while the interpreter mutates it.
type Environ struct {
	mu  sync.RWMutex
	env map[string]string
}

// NewEnviron returns an empty environment.
func NewEnviron() *Environ {
	return &Environ{env: make(map[string]string)}
}

// EnvironFromList builds an environment from "KEY=value" pairs, the
// format os.Environ produces.
func EnvironFromList(environ []string) *Environ {
	e := NewEnviron()
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			e.env[key] = value
		}
	}
	return e
}

// Getenv returns the value of key, empty if unset.
func (e *Environ) Getenv(key string) string {
	v, _ := e.LookupEnv(key)
	return v
}

// LookupEnv returns the value of key and whether it was set.
func (e *Environ) LookupEnv(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.env[key]
	return v, ok
}

// Setenv sets key to value.
func (e *Environ) Setenv(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.env[key] = value
}

// Unsetenv removes key.
func (e *Environ) Unsetenv(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.env, key)
}

// Environ returns the environment as sorted "KEY=value" pairs.
func (e *Environ) Environ() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.env))
	for k, v := range e.env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Expand substitutes $VAR and ${VAR} references in s from the
// environment. Unset variables expand to "".
func (e *Environ) Expand(s string) string {
	return os.Expand(s, e.Getenv)
}

package proc

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Env is a session-scoped environment. Assignments are immediately visible
// to every subsequently spawned child; there is no shell-local shadowing.
type Env struct {
	rw  sync.RWMutex
	env map[string]string
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{}
}

// NewEnvFrom creates an environment from a list of "key=value" entries,
// typically os.Environ().
func NewEnvFrom(environ []string) *Env {
	out := &Env{}
	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.Setenv(key, value)
	}
	return out
}

// Setenv sets the value of the variable named by key.
func (m *Env) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// Unsetenv removes the variable named by key.
func (m *Env) Unsetenv(key string) {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
}

// LookupEnv fetches the value of the variable and whether it was set.
func (m *Env) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv fetches the value of the variable, "" if unset.
func (m *Env) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ returns the environment as a sorted list of "key=value" strings
// in the form expected by exec.Cmd.
func (m *Env) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}

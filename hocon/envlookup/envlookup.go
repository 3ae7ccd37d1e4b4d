// Package envlookup isolates environment-variable lookup behind a small
// seam, so HOCON substitution resolution can be exercised in tests
// without mutating the real process environment.
package envlookup

import "os"

// Lookup resolves an environment variable by name, mirroring
// os.LookupEnv's signature.
type Lookup func(name string) (string, bool)

// OS reads the real process environment.
func OS(name string) (string, bool) { return os.LookupEnv(name) }

// Map adapts a plain map to Lookup, for tests and embedded defaults.
func Map(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

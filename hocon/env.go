package hocon

import "github.com/j5ik2o/parsec-go/hocon/envlookup"

// EnvLookup resolves an environment variable by name, mirroring
// os.LookupEnv's signature. It is threaded through Resolve as a seam so
// tests can substitute a fixed map instead of mutating the process
// environment. It is an alias of envlookup.Lookup so callers of this
// package don't need to import the subpackage directly.
type EnvLookup = envlookup.Lookup

// OSEnvLookup reads the real process environment.
var OSEnvLookup EnvLookup = envlookup.OS

// MapEnvLookup adapts a plain map to EnvLookup, for tests.
func MapEnvLookup(m map[string]string) EnvLookup { return envlookup.Map(m) }

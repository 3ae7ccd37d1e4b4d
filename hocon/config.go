package hocon

import (
	"math"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shopspring/decimal"
)

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Config wraps a fully resolved ConfigValue tree and exposes dotted-path
// lookup. It is safe for concurrent reads.
type Config struct {
	root   ConfigValue
	logger hclog.Logger
}

// GetValueE performs a dotted-path lookup, performing on-the-spot
// resolution if the path still lands on an unresolved Reference (the
// defensive case; Config built through ConfigFactory is already fully
// resolved). It returns ErrNotFound for an absent path, and a *ConfigError
// with Kind Resolve if a required reference cannot be resolved.
func (c *Config) GetValueE(path string) (ConfigValue, error) {
	v, ok := getValueInternal(c.root, path)
	if !ok {
		return ConfigValue{}, ErrNotFound
	}
	if v.Kind == KindReference {
		return resolveOnce(v, c.root, OSFileReader{}, OSEnvLookup, c.logger)
	}
	return v, nil
}

// GetValue performs a dotted-path lookup, returning (_, false) for an
// absent path or an unresolvable reference. Use GetValueE to distinguish
// the two and see the failure reason.
func (c *Config) GetValue(path string) (ConfigValue, bool) {
	v, err := c.GetValueE(path)
	if err != nil {
		return ConfigValue{}, false
	}
	return v, true
}

// Contains reports whether path has any value, resolved or not.
func (c *Config) Contains(path string) bool {
	_, ok := getValueInternal(c.root, path)
	return ok
}

// ToConfigValue exposes the root value, e.g. for nesting one Config inside
// another document.
func (c *Config) ToConfigValue() ConfigValue { return c.root }

func (c *Config) GetString(path string) (string, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

func (c *Config) GetBool(path string) (bool, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

func (c *Config) GetInt64(path string) (int64, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	if !v.Num.IsInteger() {
		return 0, false
	}
	return v.Num.IntPart(), true
}

func (c *Config) GetUint64(path string) (uint64, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	if !v.Num.IsInteger() || v.Num.Sign() < 0 {
		return 0, false
	}
	return uint64(v.Num.IntPart()), true
}

func (c *Config) GetFloat64(path string) (float64, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	f, _ := v.Num.Float64()
	return f, true
}

func (c *Config) GetFloat32(path string) (float32, bool) {
	f, ok := c.GetFloat64(path)
	if !ok {
		return 0, false
	}
	return float32(f), true
}

func (c *Config) GetDuration(path string) (Duration, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindDuration {
		return Duration{}, false
	}
	return v.Dur, true
}

// GetStdDuration narrows a Duration value to a time.Duration, returning
// false when the magnitude doesn't fit an int64 nanosecond count.
func (c *Config) GetStdDuration(path string) (time.Duration, bool) {
	d, ok := c.GetDuration(path)
	if !ok {
		return 0, false
	}
	nanos := d.Nanos()
	if !nanos.IsInteger() || nanos.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || nanos.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, false
	}
	return time.Duration(nanos.IntPart()), true
}

func (c *Config) GetObject(path string) (ConfigValue, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindObject {
		return ConfigValue{}, false
	}
	return v, true
}

func (c *Config) GetArray(path string) ([]ConfigValue, bool) {
	v, ok := c.GetValue(path)
	if !ok || v.Kind != KindArray {
		return nil, false
	}
	return v.Arr, true
}

// ConfigFactory parses and resolves HOCON text into a Config, through a
// configurable FileReader capability. It must not be shared across
// concurrent factories' worth of include resolution.
type ConfigFactory struct {
	fileReader FileReader
	envLookup  EnvLookup
	logger     hclog.Logger
}

type ConfigFactoryOption func(*ConfigFactory)

func WithFileReader(fr FileReader) ConfigFactoryOption {
	return func(f *ConfigFactory) { f.fileReader = fr }
}

func WithEnvLookup(lookup EnvLookup) ConfigFactoryOption {
	return func(f *ConfigFactory) { f.envLookup = lookup }
}

// WithFactoryLogger sets the hclog.Logger the factory's parse and resolve
// passes trace their diagnostics through. A nil logger behaves like the
// default (hclog.NewNullLogger()).
func WithFactoryLogger(logger hclog.Logger) ConfigFactoryOption {
	return func(f *ConfigFactory) { f.logger = logger }
}

func NewConfigFactory(opts ...ConfigFactoryOption) *ConfigFactory {
	f := &ConfigFactory{fileReader: OSFileReader{}, envLookup: OSEnvLookup, logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = hclog.NewNullLogger()
	}
	return f
}

// LoadFromFile reads filename through the factory's FileReader, then
// parses and resolves it exactly as ParseStrings would.
func (f *ConfigFactory) LoadFromFile(filename string) (*Config, error) {
	text, err := f.fileReader.ReadToString(filename)
	if err != nil {
		return nil, err
	}
	return f.ParseStrings(text)
}

// ParseStrings parses each text as a separate top-level document, folds
// them left-to-right with WithFallback (earlier documents take
// precedence), resolves the result to a fixed point, and wraps it as a
// Config.
func (f *ConfigFactory) ParseStrings(texts ...string) (*Config, error) {
	if len(texts) == 0 {
		return nil, NewConfigError(Parse, "no input")
	}
	docs := make([]ConfigValue, 0, len(texts))
	for _, t := range texts {
		doc, err := ParseDocumentWithConfig(t, WithParserLogger(f.logger))
		if err != nil {
			return nil, wrapConfigError(Parse, "parsing document", err)
		}
		docs = append(docs, doc)
	}
	merged := mergeDocuments(docs)
	resolved, err := Resolve(merged, f.fileReader, f.envLookup, WithLogger(f.logger))
	if err != nil {
		return nil, err
	}
	return &Config{root: resolved, logger: f.logger}, nil
}

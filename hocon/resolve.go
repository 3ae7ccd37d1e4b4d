package hocon

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/j5ik2o/parsec-go/internal/omap"
)

// ResolveConfig configures a Resolve run: its logger and the bound on
// fixed-point passes before a reference cycle is reported.
type ResolveConfig struct {
	Logger        hclog.Logger
	MaxIterations int
}

// ResolveOption mutates a ResolveConfig.
type ResolveOption func(*ResolveConfig)

// WithLogger sets the hclog.Logger Resolve traces its passes through. A
// nil logger behaves like the default (hclog.NewNullLogger()).
func WithLogger(logger hclog.Logger) ResolveOption {
	return func(c *ResolveConfig) { c.Logger = logger }
}

// WithMaxIterations overrides the fixed-point pass bound. The default is
// one more than the number of References/Includes found in the input,
// since each pass resolves at least one when the document has no cycle.
func WithMaxIterations(n int) ResolveOption {
	return func(c *ResolveConfig) { c.MaxIterations = n }
}

func newResolveConfig(cv ConfigValue, opts ...ResolveOption) *ResolveConfig {
	c := &ResolveConfig{Logger: hclog.NewNullLogger(), MaxIterations: countReferences(cv) + 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}

// Resolve runs the fixed-point resolution pass: it repeatedly rewrites cv
// against itself as root until no Reference or Include remains, or the
// iteration bound is exceeded (treated as a reference cycle). fr serves
// include targets; lookupEnv serves environment-variable fallback for
// substitutions.
func Resolve(cv ConfigValue, fr FileReader, lookupEnv EnvLookup, opts ...ResolveOption) (ConfigValue, error) {
	cfg := newResolveConfig(cv, opts...)
	cur := cv
	for i := 0; i < cfg.MaxIterations; i++ {
		cfg.Logger.Trace("resolve pass starting", "pass", i, "references_remaining", countReferences(cur))
		next, err := resolveOnce(cur, cur, fr, lookupEnv, cfg.Logger)
		if err != nil {
			cfg.Logger.Debug("resolve pass failed", "pass", i, "error", err)
			return ConfigValue{}, err
		}
		if countReferences(next) == 0 {
			cfg.Logger.Trace("resolve reached a fixed point", "pass", i)
			return next, nil
		}
		cur = next
	}
	return ConfigValue{}, NewConfigError(Resolve, "resolution did not reach a fixed point (possible reference cycle)")
}

func countReferences(cv ConfigValue) int {
	switch cv.Kind {
	case KindReference, KindInclude:
		return 1
	case KindLink:
		n := 0
		for _, v := range cv.ToVec() {
			n += countReferences(v)
		}
		return n
	case KindArray:
		n := 0
		for _, v := range cv.Arr {
			n += countReferences(v)
		}
		return n
	case KindObject:
		n := len(cv.Includes)
		for _, v := range cv.Obj.All() {
			n += countReferences(v)
		}
		return n
	default:
		return 0
	}
}

// resolveOnce resolves one layer of cv against root. Include splicing
// happens eagerly within the same pass; Reference substitution happens
// against root's current (possibly still-unresolved) state, relying on
// the caller's fixed-point loop to converge over multiple passes. A
// reference not found while root still has unspliced includes is left
// in place for the next pass.
func resolveOnce(cv ConfigValue, root ConfigValue, fr FileReader, lookupEnv EnvLookup, logger hclog.Logger) (ConfigValue, error) {
	switch cv.Kind {
	case KindInclude:
		included, err := loadInclude(cv.IncludeFile, fr)
		if err != nil {
			return ConfigValue{}, err
		}
		return resolveOnce(included, root, fr, lookupEnv, logger)

	case KindLink:
		vec := cv.ToVec()
		head, err := resolveOnce(vec[0], root, fr, lookupEnv, logger)
		if err != nil {
			return ConfigValue{}, err
		}
		for _, e := range vec[1:] {
			re, err := resolveOnce(e, root, fr, lookupEnv, logger)
			if err != nil {
				return ConfigValue{}, err
			}
			head.Push(re)
		}
		return head, nil

	case KindArray:
		out := make([]ConfigValue, 0, len(cv.Arr))
		for _, e := range cv.Arr {
			re, err := resolveOnce(e, root, fr, lookupEnv, logger)
			if err != nil {
				return ConfigValue{}, err
			}
			out = append(out, re)
		}
		return NewArray(out), nil

	case KindObject:
		base := omap.New[string, ConfigValue](cv.Obj.Len())
		for k, v := range cv.Obj.All() {
			rv, err := resolveOnce(v, root, fr, lookupEnv, logger)
			if err != nil {
				return ConfigValue{}, err
			}
			base.Add(k, rv)
		}
		result := NewObject(base)
		for _, filename := range cv.Includes {
			logger.Trace("splicing include", "file", filename)
			included, err := loadInclude(filename, fr)
			if err != nil {
				return ConfigValue{}, err
			}
			resolvedIncluded, err := resolveOnce(included, root, fr, lookupEnv, logger)
			if err != nil {
				return ConfigValue{}, err
			}
			result.MergeWith(resolvedIncluded)
		}
		return result, nil

	case KindReference:
		refValue, found := getValueInternal(root, cv.RefPath)
		if !found && len(root.Includes) > 0 {
			// root's own includes are spliced at the end of this pass; the
			// reference is retried against the spliced root next pass.
			return cv, nil
		}
		if !found {
			if s, ok := lookupEnv(cv.RefPath); ok {
				refValue, found = NewString(s), true
			}
		}
		logger.Trace("resolving reference", "path", cv.RefPath, "optional", cv.RefMissing, "found", found)
		if cv.RefMissing {
			if found {
				return refValue, nil
			}
			if cv.RefPrev != nil {
				return cv.RefPrev.Latest(), nil
			}
			return NewNull(), nil
		}
		if !found {
			logger.Debug("required reference could not be resolved", "path", cv.RefPath)
			return ConfigValue{}, NewConfigError(Resolve, fmt.Sprintf("cannot resolve the reference: %s", cv.RefPath))
		}
		return refValue, nil

	default:
		return cv, nil
	}
}

func loadInclude(filename string, fr FileReader) (ConfigValue, error) {
	text, err := fr.ReadToString(filename)
	if err != nil {
		return ConfigValue{}, err
	}
	doc, err := ParseDocument(text)
	if err != nil {
		return ConfigValue{}, wrapConfigError(Parse, filename, err)
	}
	return doc, nil
}

// getValueInternal descends path (dot-separated) through root's object
// tree, following Latest() at each step, without performing on-the-spot
// reference resolution (that is left to the caller's fixed-point loop).
func getValueInternal(root ConfigValue, path string) (ConfigValue, bool) {
	keys := splitPath(path)
	cur := root
	for _, k := range keys {
		if cur.Kind != KindObject {
			return ConfigValue{}, false
		}
		v, ok := cur.Obj.Get(k)
		if !ok {
			return ConfigValue{}, false
		}
		cur = v.Latest()
	}
	return cur, true
}

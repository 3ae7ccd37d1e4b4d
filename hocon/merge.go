package hocon

import "github.com/j5ik2o/parsec-go/internal/omap"

// MergeWith mutates cv, folding other in as a fallback: an Object merges
// key-wise (shared keys recurse, keys present only on other are copied in,
// preserving the order they first appear in cv); a Link whose counterpart
// is not a Link has its head merged with other and pushed as a new head;
// an Array, two Links, or any other pairing leaves cv unchanged (left
// wins). A Reference is left untouched
// here — its prev back-pointer is set only by Push, never by MergeWith.
func (cv *ConfigValue) MergeWith(other ConfigValue) {
	switch {
	case cv.Kind == KindObject && other.Kind == KindObject:
		merged := cv.Obj
		for k, rv := range other.Obj.All() {
			if lv, ok := merged.Get(k); ok {
				lv.MergeWith(rv)
				merged.Add(k, lv)
			} else {
				merged.Add(k, rv)
			}
		}
		cv.Obj = merged
	case cv.Kind == KindArray && other.Kind == KindArray:
		// left wins; arrays do not fall back element-wise.
	case cv.Kind == KindLink && other.Kind == KindLink:
		// both sides already carry their own history; nothing to fold.
	case cv.Kind == KindLink:
		head := *cv.LinkValue
		head.MergeWith(other)
		cv.Push(head)
	default:
		// any/any: left wins.
	}
}

// WithFallback merges other into cv as defaults, the operation used to
// fold multiple top-level documents together. It is MergeWith under a
// name that matches how the top-level driver invokes it.
func (cv *ConfigValue) WithFallback(other ConfigValue) {
	cv.MergeWith(other)
}

// mergeDocuments folds a sequence of parsed top-level documents with
// WithFallback, first document taking precedence.
func mergeDocuments(docs []ConfigValue) ConfigValue {
	if len(docs) == 0 {
		return NewObject(omap.New[string, ConfigValue](0))
	}
	cur := docs[0]
	for _, d := range docs[1:] {
		cur.WithFallback(d)
	}
	return cur
}

package nested

import "math"

// WrapInDicts re-nests a flat array of computed values by wrapping each value
// in single-key objects. Each run in runs is the sequence of field names
// between two repeated levels: the first run wraps the outermost level, every
// further run applies one list nesting deeper. NaN values become explicit
// nils so sparse signal output stays sparse in columnar storage.
func WrapInDicts(values []any, runs [][]string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = wrapInDicts(v, runs)
	}
	return out
}

func wrapInDicts(v any, runs [][]string) any {
	var props []string
	if len(runs) > 0 {
		props = runs[0]
	}
	if len(runs) <= 1 {
		return wrapValueInDict(v, props)
	}
	if v == nil {
		return map[string]any{}
	}
	elems, ok := v.([]any)
	if !ok {
		return wrapValueInDict(v, props)
	}
	res := make([]any, len(elems))
	for i, e := range elems {
		res[i] = wrapInDicts(e, runs[1:])
	}
	return wrapValueInDict(res, props)
}

func wrapValueInDict(v any, props []string) any {
	// A signal that produced no value, or NaN, becomes an explicit absent
	// value so the columnar encoding stays sparse.
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) {
			v = nil
		}
	case float32:
		if math.IsNaN(float64(f)) {
			v = nil
		}
	}
	for i := len(props) - 1; i >= 0; i-- {
		v = map[string]any{props[i]: v}
	}
	return v
}

// ReplaceEmbeddings returns a copy of v with every raw embedding vector
// replaced by nil. Embedding values live in the embedding index; the columnar
// store only keeps their (empty) position.
func ReplaceEmbeddings(v any) any {
	switch t := v.(type) {
	case []float32:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = ReplaceEmbeddings(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ReplaceEmbeddings(e)
		}
		return out
	default:
		return v
	}
}

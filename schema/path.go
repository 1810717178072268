package schema

import (
	"slices"
	"strings"
)

const (
	// Wildcard is the path segment addressing every element of a repeated field.
	Wildcard = "*"

	// RowIDColumn is the reserved top-level field holding an item's row
	// identifier. It is synthesized at write time when absent.
	RowIDColumn = "__rowid__"

	// DerivedColumn is the reserved top-level namespace under which all signal
	// output is stored, at the schema position mirroring the enriched source.
	DerivedColumn = "__derived__"

	// EntityFeatureKey is the synthetic sub-field marking an entity's own
	// feature value. Signals targeting it attach to the entity itself.
	EntityFeatureKey = "__entity__"

	// SpanKey is the field under which a string-span value stores its
	// (start, end) byte range.
	SpanKey = "__span__"
)

// Path is an ordered address into a schema or item: a sequence of field names
// and/or Wildcard segments.
type Path []string

// ParsePath parses a dotted path string, e.g. "doc.chunks.*.text".
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether two paths are segment-wise identical.
func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// IsDerived reports whether the path lives under the reserved derived-fields
// namespace, i.e. it addresses signal output.
func (p Path) IsDerived() bool {
	return len(p) > 0 && p[0] == DerivedColumn
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	return slices.Clone(p)
}

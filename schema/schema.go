package schema

// Schema is the field tree rooted at a dataset. The root is synthetic: it only
// carries the top-level Fields map.
type Schema struct {
	Root Field
}

// New creates a schema with the given top-level fields. A nil map yields an
// empty schema ready to be grown by merges.
func New(fields map[string]*Field) *Schema {
	if fields == nil {
		fields = map[string]*Field{}
	}
	return &Schema{Root: Field{Fields: fields}}
}

// WithRowID returns s with the row identifier column present as a string
// field. s itself is untouched; if the column already exists s is returned
// as-is.
func WithRowID(s *Schema) *Schema {
	if _, ok := s.Root.Fields[RowIDColumn]; ok {
		return s
	}
	c := s.Clone()
	c.Root.Fields[RowIDColumn] = Scalar(DataTypeString)
	return c
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	return &Schema{Root: *s.Root.Clone()}
}

// Get returns the field at p, or nil if there is none.
func (s *Schema) Get(p Path) *Field {
	return s.Root.Get(p)
}

// Contains reports whether p resolves to a field. It is a pre-flight
// capability check ("does this dataset have an embedding at this path") and
// returns false, not an error, on any missing segment.
func (s *Schema) Contains(p Path) bool {
	return s.Root.Get(p) != nil
}

// Leaves returns the paths of all leaf fields, in deterministic order.
func (s *Schema) Leaves() []Path {
	var out []Path
	s.Root.appendLeaves(nil, &out)
	return out
}

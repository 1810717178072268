package schema

import "sort"

// Field is one node of the schema tree. Except for the synthetic root, exactly
// one of Fields, Repeated, or a non-invalid DType is set.
type Field struct {
	// DType is the scalar kind for leaf fields.
	DType DataType
	// Fields maps child names to child fields for object nodes.
	Fields map[string]*Field
	// Repeated is the single element field for list nodes.
	Repeated *Field
	// IsEntity marks fields holding extracted entities.
	IsEntity bool
	// SignalRoot marks the root of a signal's output subtree.
	SignalRoot bool
	// DerivedFrom is the source path this field was computed from, or nil.
	// Once set it is never changed by a merge.
	DerivedFrom Path
}

// Scalar returns a leaf field of the given type.
func Scalar(t DataType) *Field {
	return &Field{DType: t}
}

// Object returns an object field with the given children.
func Object(fields map[string]*Field) *Field {
	return &Field{Fields: fields}
}

// List returns a repeated field with the given element.
func List(elem *Field) *Field {
	return &Field{Repeated: elem}
}

// IsLeaf reports whether the field has no nested structure. String spans count
// as leaves.
func (f *Field) IsLeaf() bool {
	return f.Fields == nil && f.Repeated == nil
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	c := &Field{
		DType:       f.DType,
		Repeated:    f.Repeated.Clone(),
		IsEntity:    f.IsEntity,
		SignalRoot:  f.SignalRoot,
		DerivedFrom: f.DerivedFrom.Clone(),
	}
	if f.Fields != nil {
		c.Fields = make(map[string]*Field, len(f.Fields))
		for name, sub := range f.Fields {
			c.Fields[name] = sub.Clone()
		}
	}
	return c
}

// Get walks the field tree along p, descending into the repeated element for a
// Wildcard segment and into the named child otherwise. It returns nil when any
// segment is missing; absence is not an error.
func (f *Field) Get(p Path) *Field {
	cur := f
	for _, seg := range p {
		if cur == nil {
			return nil
		}
		if seg == Wildcard {
			cur = cur.Repeated
			continue
		}
		if cur.Fields == nil {
			return nil
		}
		cur = cur.Fields[seg]
	}
	return cur
}

// childNames returns the object child names in deterministic order.
func (f *Field) childNames() []string {
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *Field) appendLeaves(prefix Path, out *[]Path) {
	switch {
	case f.Fields != nil:
		for _, name := range f.childNames() {
			f.Fields[name].appendLeaves(append(prefix.Clone(), name), out)
		}
	case f.Repeated != nil:
		f.Repeated.appendLeaves(append(prefix.Clone(), Wildcard), out)
	default:
		*out = append(*out, prefix)
	}
}

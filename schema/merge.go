package schema

// Merge folds a list of partial schemas into one canonical schema. It is a
// pure fold: the inputs are never mutated, and the result is structurally
// independent of merge order (only error messages depend on it).
//
// Per path, boolean flags OR together, DerivedFrom is filled in when the
// destination has none, object children are unioned key-wise, repeated
// children merge recursively, and scalar leaves must agree on dtype.
func Merge(schemas []*Schema) (*Schema, error) {
	merged := New(nil)
	for _, s := range schemas {
		if err := mergeFieldInto(&merged.Root, &s.Root, nil); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func mergeFieldInto(dst, src *Field, at Path) error {
	dst.IsEntity = dst.IsEntity || src.IsEntity
	dst.SignalRoot = dst.SignalRoot || src.SignalRoot
	if dst.DerivedFrom == nil {
		dst.DerivedFrom = src.DerivedFrom.Clone()
	}

	switch {
	case src.Fields != nil:
		if dst.Fields == nil {
			return &StructuralConflictError{Path: at, Detail: "source has named children but destination does not"}
		}
		for _, name := range src.childNames() {
			sub := src.Fields[name]
			if existing, ok := dst.Fields[name]; ok {
				if err := mergeFieldInto(existing, sub, append(at.Clone(), name)); err != nil {
					return err
				}
			} else {
				dst.Fields[name] = sub.Clone()
			}
		}
	case src.Repeated != nil:
		if dst.Repeated == nil {
			return &StructuralConflictError{Path: at, Detail: "source is repeated but destination is not"}
		}
		return mergeFieldInto(dst.Repeated, src.Repeated, append(at.Clone(), Wildcard))
	default:
		if dst.Fields != nil || dst.Repeated != nil {
			return &StructuralConflictError{Path: at, Detail: "source is a leaf but destination has children"}
		}
		if dst.DType != src.DType {
			return &SchemaConflictError{Path: at, Dest: dst.DType, Src: src.DType}
		}
	}
	return nil
}

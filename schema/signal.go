package schema

// PlaceSignal locates one signal's output schema inside the canonical schema
// tree. The output is keyed by signalKey, marked as a signal root, annotated
// with lineage pointing at source, and wrapped segment by segment so that it
// sits under the reserved derived-fields namespace at the schema position
// mirroring source.
//
// source must address a current leaf of current, otherwise an
// InvalidPathError is returned.
func PlaceSignal(output *Field, signalKey string, source Path, current *Schema) (*Schema, error) {
	if !isLeafPath(current, source) {
		return nil, &InvalidPathError{Path: source, Leaves: current.Leaves()}
	}

	out := output.Clone()
	out.SignalRoot = true

	enriched := Object(map[string]*Field{signalKey: out})

	// A signal enriching an entity's feature value attaches conceptually to
	// the entity itself: strip the marker segment and point lineage at the
	// entity's own derivation.
	if len(source) > 0 && source[len(source)-1] == EntityFeatureKey {
		source = source[:len(source)-1]
		if entity := current.Get(source); entity != nil {
			enriched.DerivedFrom = entity.DerivedFrom.Clone()
		}
	}

	applyLineage(out, source)

	for i := len(source) - 1; i >= 0; i-- {
		if source[i] == Wildcard {
			enriched = List(enriched)
		} else {
			enriched = Object(map[string]*Field{source[i]: enriched})
		}
	}

	// A signal enriching another signal's output already lives under the
	// derived namespace; skip one wrapper level to avoid a doubled prefix.
	if source.IsDerived() {
		enriched = enriched.Fields[DerivedColumn]
	}

	return New(map[string]*Field{
		RowIDColumn:   Scalar(DataTypeString),
		DerivedColumn: enriched,
	}), nil
}

// applyLineage sets DerivedFrom on f and all of its descendants. String spans
// are opaque leaves and are not descended into.
func applyLineage(f *Field, from Path) {
	switch {
	case f.DType == DataTypeStringSpan:
		// Leaf.
	case f.Fields != nil:
		for _, sub := range f.Fields {
			applyLineage(sub, from)
		}
	case f.Repeated != nil:
		applyLineage(f.Repeated, from)
	}
	f.DerivedFrom = from.Clone()
}

func isLeafPath(s *Schema, p Path) bool {
	for _, leaf := range s.Leaves() {
		if leaf.Equal(p) {
			return true
		}
	}
	return false
}

// Package nested implements the structural flatten/unflatten transform
// between nested items and flat leaf sequences.
//
// An item is the uniform sum of three shapes: an object (map[string]any), a
// repeated list ([]any), or a leaf (anything else). What counts as a leaf is
// decided by a LeafFunc predicate, not by type introspection: a raw vector
// ([]float32) is a primitive leaf even though it is a sequence type.
//
// Flatten, FlattenKeys and Unflatten all walk the same recursion in the same
// deterministic order (object values by lexicographic key, list elements in
// order), which guarantees positional correspondence between flattened values,
// their leaf keys, and their reconstructed nested locations.
package nested

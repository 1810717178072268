package nested

import (
	"slices"
	"strconv"
	"strings"
)

// LeafKey is the flat identifier of one leaf within one row: the row id plus
// the ordered list indices on the path to the leaf. Object segments do not
// contribute indices; only repeated levels do.
type LeafKey struct {
	RowID   string
	Indices []int
}

// String returns the canonical encoded form, e.g. "rowid.0.2". Row ids are
// URL-safe base64 and never contain '.'.
func (k LeafKey) String() string {
	var b strings.Builder
	b.WriteString(k.RowID)
	for _, i := range k.Indices {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// Equal reports whether two keys identify the same leaf.
func (k LeafKey) Equal(o LeafKey) bool {
	return k.RowID == o.RowID && slices.Equal(k.Indices, o.Indices)
}

// FlattenKeys produces the LeafKey of every leaf of items under isLeaf, by the
// same recursion and order as Flatten: position i of the result refers to the
// same leaf as position i of Flatten over the same input and predicate.
// rowIDs and items are parallel.
func FlattenKeys(rowIDs []string, items []Item, isLeaf LeafFunc) []LeafKey {
	if isLeaf == nil {
		isLeaf = IsPrimitive
	}
	var out []LeafKey
	for i, item := range items {
		flattenKeysInto(rowIDs[i], item, nil, isLeaf, &out)
	}
	return out
}

func flattenKeysInto(rowID string, v any, loc []int, isLeaf LeafFunc, out *[]LeafKey) {
	if isLeaf(v) {
		*out = append(*out, LeafKey{RowID: rowID, Indices: slices.Clone(loc)})
		return
	}
	switch t := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(t) {
			flattenKeysInto(rowID, t[k], loc, isLeaf, out)
		}
	case []any:
		for i, e := range t {
			flattenKeysInto(rowID, e, append(loc, i), isLeaf, out)
		}
	}
}

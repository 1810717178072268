// Package schema models the typed, nested field tree of a dataset, including
// the derivation lineage of enriched ("signal") fields.
//
// A Schema is an owned tree of Field nodes. Interior nodes are either objects
// (named children) or repeated fields (a single element child); leaves carry a
// scalar DataType. Paths address nodes in the tree; the wildcard segment "*"
// descends into a repeated field's element.
//
// Schemas grow monotonically: signal computations produce partial schemas that
// are folded into the canonical one with Merge. Merging never narrows an
// established schema, and incompatible merges fail with SchemaConflictError or
// StructuralConflictError rather than guessing which side is authoritative.
package schema

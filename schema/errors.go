package schema

import (
	"fmt"
	"strings"
)

// SchemaConflictError indicates a merge found two different scalar dtypes at
// the same path. It is fatal to the merge: neither side is authoritative.
type SchemaConflictError struct {
	Path Path
	Dest DataType
	Src  DataType
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("schema conflict at %q: cannot merge dtype %s into %s", e.Path, e.Src, e.Dest)
}

// StructuralConflictError indicates a merge found incompatible shapes at the
// same path, e.g. an object on one side and a repeated field on the other.
type StructuralConflictError struct {
	Path   Path
	Detail string
}

func (e *StructuralConflictError) Error() string {
	return fmt.Sprintf("structural conflict at %q: %s", e.Path, e.Detail)
}

// InvalidPathError indicates a path that does not address a current leaf of
// the schema.
type InvalidPathError struct {
	Path   Path
	Leaves []Path
}

func (e *InvalidPathError) Error() string {
	leaves := make([]string, len(e.Leaves))
	for i, l := range e.Leaves {
		leaves[i] = l.String()
	}
	return fmt.Sprintf("%q is not a valid leaf path, leaf paths: [%s]", e.Path, strings.Join(leaves, " "))
}

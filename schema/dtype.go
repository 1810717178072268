package schema

import "fmt"

// DataType is the scalar kind of a leaf Field.
type DataType uint8

const (
	DataTypeInvalid DataType = iota
	DataTypeBool
	DataTypeInt32
	DataTypeInt64
	DataTypeFloat32
	DataTypeFloat64
	DataTypeString
	// DataTypeStringSpan is a (start, end) byte range into a string leaf.
	// Span fields act as leaves: they have no addressable children.
	DataTypeStringSpan
	DataTypeBinary
	// DataTypeEmbedding marks a leaf whose values are raw vectors. Embedding
	// values are stored in the embedding index, not the columnar store.
	DataTypeEmbedding
)

// String returns the stable name of the DataType. The names are part of the
// manifest's JSON encoding and must not change.
func (t DataType) String() string {
	switch t {
	case DataTypeBool:
		return "bool"
	case DataTypeInt32:
		return "int32"
	case DataTypeInt64:
		return "int64"
	case DataTypeFloat32:
		return "float32"
	case DataTypeFloat64:
		return "float64"
	case DataTypeString:
		return "string"
	case DataTypeStringSpan:
		return "string_span"
	case DataTypeBinary:
		return "binary"
	case DataTypeEmbedding:
		return "embedding"
	default:
		return "invalid"
	}
}

// ParseDataType parses a stable DataType name as produced by String.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "bool":
		return DataTypeBool, nil
	case "int32":
		return DataTypeInt32, nil
	case "int64":
		return DataTypeInt64, nil
	case "float32":
		return DataTypeFloat32, nil
	case "float64":
		return DataTypeFloat64, nil
	case "string":
		return DataTypeString, nil
	case "string_span":
		return DataTypeStringSpan, nil
	case "binary":
		return DataTypeBinary, nil
	case "embedding":
		return DataTypeEmbedding, nil
	default:
		return DataTypeInvalid, fmt.Errorf("unknown dtype %q", s)
	}
}

package columnar

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/fieldline-ai/fieldline/schema"
)

// ParquetSchema converts a dataset schema into the target parquet encoding
// schema. Every field is optional: signal output is sparse by nature.
func ParquetSchema(s *schema.Schema) (*parquet.Schema, error) {
	group := parquet.Group{}
	for name, f := range s.Root.Fields {
		node, err := toNode(f, schema.Path{name})
		if err != nil {
			return nil, err
		}
		group[name] = parquet.Optional(node)
	}
	return parquet.NewSchema("item", group), nil
}

func toNode(f *schema.Field, at schema.Path) (parquet.Node, error) {
	switch {
	case f.Fields != nil:
		group := parquet.Group{}
		for name, sub := range f.Fields {
			node, err := toNode(sub, append(at.Clone(), name))
			if err != nil {
				return nil, err
			}
			group[name] = parquet.Optional(node)
		}
		return group, nil
	case f.Repeated != nil:
		elem, err := toNode(f.Repeated, append(at.Clone(), schema.Wildcard))
		if err != nil {
			return nil, err
		}
		return parquet.List(elem), nil
	default:
		return scalarNode(f.DType, at)
	}
}

func scalarNode(t schema.DataType, at schema.Path) (parquet.Node, error) {
	switch t {
	case schema.DataTypeBool:
		return parquet.Leaf(parquet.BooleanType), nil
	case schema.DataTypeInt32:
		return parquet.Int(32), nil
	case schema.DataTypeInt64:
		return parquet.Int(64), nil
	case schema.DataTypeFloat32:
		return parquet.Leaf(parquet.FloatType), nil
	case schema.DataTypeFloat64:
		return parquet.Leaf(parquet.DoubleType), nil
	case schema.DataTypeString:
		return parquet.String(), nil
	case schema.DataTypeStringSpan:
		// A span is a (start, end) byte range into its source string.
		return parquet.Group{
			"start": parquet.Optional(parquet.Int(64)),
			"end":   parquet.Optional(parquet.Int(64)),
		}, nil
	case schema.DataTypeBinary:
		return parquet.Leaf(parquet.ByteArrayType), nil
	case schema.DataTypeEmbedding:
		// The vector values live in the embedding index; the column keeps
		// only the (null) position.
		return parquet.List(parquet.Leaf(parquet.FloatType)), nil
	default:
		return nil, fmt.Errorf("field %q has no encodable dtype", at)
	}
}

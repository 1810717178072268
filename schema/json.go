package schema

import "encoding/json"

// fieldJSON is the wire form of a Field. DTypes serialize by stable name.
type fieldJSON struct {
	DType       string            `json:"dtype,omitempty"`
	Fields      map[string]*Field `json:"fields,omitempty"`
	Repeated    *Field            `json:"repeated_field,omitempty"`
	IsEntity    bool              `json:"is_entity,omitempty"`
	SignalRoot  bool              `json:"signal_root,omitempty"`
	DerivedFrom Path              `json:"derived_from,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (f *Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{
		Fields:      f.Fields,
		Repeated:    f.Repeated,
		IsEntity:    f.IsEntity,
		SignalRoot:  f.SignalRoot,
		DerivedFrom: f.DerivedFrom,
	}
	if f.DType != DataTypeInvalid {
		out.DType = f.DType.String()
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	var in fieldJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*f = Field{
		Fields:      in.Fields,
		Repeated:    in.Repeated,
		IsEntity:    in.IsEntity,
		SignalRoot:  in.SignalRoot,
		DerivedFrom: in.DerivedFrom,
	}
	if in.DType != "" {
		t, err := ParseDataType(in.DType)
		if err != nil {
			return err
		}
		f.DType = t
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]*Field{"fields": s.Root.Fields})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var in struct {
		Fields map[string]*Field `json:"fields"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Fields == nil {
		in.Fields = map[string]*Field{}
	}
	s.Root = Field{Fields: in.Fields}
	return nil
}

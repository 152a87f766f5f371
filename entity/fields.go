package entity

import "strings"

const (
	fieldSeparator = "|"
	valueSeparator = "="
)

// Field is one key=value pair of the Data string.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered field set. The order is part of the wire contract:
// the seal is computed over the encoded string, so reordering changes it.
type Fields []Field

// Get returns the value of the first field with the given key.
func (f Fields) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Missing returns the key of the first field with an empty value.
func (f Fields) Missing() (string, bool) {
	for _, field := range f {
		if field.Value == "" {
			return field.Key, true
		}
	}
	return "", false
}

// Encode produces the canonical string: key=value pairs joined with "|".
func (f Fields) Encode() string {
	var sb strings.Builder
	for i, field := range f {
		if i > 0 {
			sb.WriteString(fieldSeparator)
		}
		sb.WriteString(field.Key)
		sb.WriteString(valueSeparator)
		sb.WriteString(field.Value)
	}
	return sb.String()
}

// ParseFields decodes a canonical string. Each segment is split on its first
// "=" only, so values may contain "=".
func ParseFields(data string) (Fields, error) {
	if data == "" {
		return nil, &MissingFieldError{Field: "Data"}
	}
	segments := strings.Split(data, fieldSeparator)
	fields := make(Fields, 0, len(segments))
	for _, segment := range segments {
		key, value, ok := strings.Cut(segment, valueSeparator)
		if !ok || key == "" {
			return nil, invalid("Data", "malformed segment %q", segment)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields, nil
}

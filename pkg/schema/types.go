// Package schema describes the layout of a delimited input line: the
// delimiter, an optional prompt and the ordered list of typed fields.
package schema

// Schema is the root structure loaded from YAML.
type Schema struct {
	// Delimiter separates fields. A single byte, or one of the names
	// "space", "tab", "comma", "semicolon", "pipe".
	Delimiter string `yaml:"delimiter,omitempty"`

	// Prompt is written before every line is read.
	Prompt string `yaml:"prompt,omitempty"`

	// BufferSize is the initial capacity of the reusable line buffer.
	BufferSize int `yaml:"buffer_size,omitempty"`

	// Ephemeral allocates storage per line instead of reusing a buffer.
	Ephemeral bool `yaml:"ephemeral,omitempty"`

	Fields []FieldConfig `yaml:"fields"`

	// delim is the decoded Delimiter (populated during validation).
	delim byte
}

// Delim returns the decoded delimiter byte.
func (s *Schema) Delim() byte {
	return s.delim
}

// WholeLine reports whether the schema reads each line as a single value.
func (s *Schema) WholeLine() bool {
	return len(s.Fields) == 1 && FieldType(s.Fields[0].Type) == TypeLine
}

// FieldConfig defines a single field of a line.
type FieldConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Layout is the Go time layout for time fields. Defaults to RFC 3339.
	// See https://pkg.go.dev/time#pkg-constants for format.
	Layout string `yaml:"layout,omitempty"`
}

// FieldType names the Go type a field is parsed into.
type FieldType string

const (
	TypeBool     FieldType = "bool"
	TypeChar     FieldType = "char"
	TypeInt      FieldType = "int"
	TypeInt8     FieldType = "int8"
	TypeInt16    FieldType = "int16"
	TypeInt32    FieldType = "int32"
	TypeInt64    FieldType = "int64"
	TypeUint     FieldType = "uint"
	TypeUint8    FieldType = "uint8"
	TypeUint16   FieldType = "uint16"
	TypeUint32   FieldType = "uint32"
	TypeUint64   FieldType = "uint64"
	TypeFloat32  FieldType = "float32"
	TypeFloat64  FieldType = "float64"
	TypeString   FieldType = "string"
	TypeDuration FieldType = "duration"
	TypeTime     FieldType = "time"
	TypeLine     FieldType = "line"
)

// FieldTypes lists every supported field type in documentation order.
var FieldTypes = []FieldType{
	TypeBool, TypeChar,
	TypeInt, TypeInt8, TypeInt16, TypeInt32, TypeInt64,
	TypeUint, TypeUint8, TypeUint16, TypeUint32, TypeUint64,
	TypeFloat32, TypeFloat64,
	TypeString, TypeDuration, TypeTime, TypeLine,
}

// Valid reports whether t is a supported field type.
func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

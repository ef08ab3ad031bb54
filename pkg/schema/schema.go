package schema

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a schema file.
func Load(_ context.Context, path string) (*Schema, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided schema path is expected
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	s := DefaultSchema()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}

	if err := s.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("validating schema: %w", err)
	}

	return s, nil
}

// FromTypes builds a schema from a comma-separated list of field types,
// such as "int,float64,string". Fields are named after their position.
func FromTypes(list string) (*Schema, error) {
	s := DefaultSchema()
	if err := s.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	for _, t := range strings.Split(list, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		s.Fields = append(s.Fields, FieldConfig{Type: t})
	}

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal renders the schema as YAML.
func Marshal(s *Schema) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return data, nil
}

// Validate checks a schema for errors, fills defaults and decodes the delimiter.
func Validate(s *Schema) error {
	if len(s.Fields) == 0 {
		return errors.New("fields: at least one field is required")
	}

	if s.Delimiter == "" {
		s.Delimiter = DefaultDelimiter
	}
	d, err := ParseDelimiter(s.Delimiter)
	if err != nil {
		return fmt.Errorf("delimiter: %w", err)
	}
	s.delim = d

	if s.BufferSize < 0 {
		return fmt.Errorf("buffer_size: must be >= 0, got %d", s.BufferSize)
	}
	if s.BufferSize == 0 {
		s.BufferSize = DefaultBufferSize
	}

	seen := make(map[string]bool, len(s.Fields))
	var layout string
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" {
			f.Name = fmt.Sprintf("field%d", i+1)
		}
		if err := validateField(f); err != nil {
			return fmt.Errorf("fields[%d] (%s): %w", i, f.Name, err)
		}
		if seen[f.Name] {
			return fmt.Errorf("fields[%d] (%s): duplicate name", i, f.Name)
		}
		seen[f.Name] = true

		if FieldType(f.Type) == TypeTime {
			if layout != "" && f.Layout != layout {
				return fmt.Errorf("fields[%d] (%s): all time fields must share one layout (%q vs %q)",
					i, f.Name, layout, f.Layout)
			}
			layout = f.Layout
		}
	}

	if len(s.Fields) > 1 {
		for i, f := range s.Fields {
			if FieldType(f.Type) == TypeLine {
				return fmt.Errorf("fields[%d] (%s): type line must be the only field", i, f.Name)
			}
		}
	}

	return nil
}

func validateField(f *FieldConfig) error {
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	switch f.Type {
	case "float":
		f.Type = string(TypeFloat64)
	case "byte":
		f.Type = string(TypeChar)
	}

	ft := FieldType(f.Type)
	if !ft.Valid() {
		return fmt.Errorf("invalid type %q", f.Type)
	}

	if f.Layout != "" && ft != TypeTime {
		return errors.New("layout is only allowed for time fields")
	}
	if ft == TypeTime && f.Layout == "" {
		f.Layout = DefaultTimeLayout
	}

	return nil
}

// TimeLayout returns the layout shared by the schema's time fields, or
// the empty string when the schema has none.
func (s *Schema) TimeLayout() string {
	for _, f := range s.Fields {
		if FieldType(f.Type) == TypeTime {
			return f.Layout
		}
	}
	return ""
}

// Names returns the field names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

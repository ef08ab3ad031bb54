package schema

import (
	"fmt"
	"io"
	"time"

	"github.com/ccollicutt/linr/pkg/linr"
)

// Value is one parsed field of a record.
type Value struct {
	Name  string
	Type  FieldType
	Value any
}

// Decoder reads records laid out by a schema from a linr.Reader.
type Decoder struct {
	schema  *Schema
	reg     *linr.Registry
	steps   []linr.Step
	getters []func() any
}

// NewDecoder prepares the parse steps for a validated schema. Time fields
// are parsed through a layout override in a registry private to the decoder.
func NewDecoder(s *Schema) (*Decoder, error) {
	d := &Decoder{
		schema: s,
		reg:    linr.DefaultRegistry.Clone(),
	}

	if layout := s.TimeLayout(); layout != "" {
		linr.Register(d.reg, linr.TimeParser(layout))
	}

	if s.WholeLine() {
		return d, nil
	}

	for i, f := range s.Fields {
		st, get, err := newSlot(FieldType(f.Type), f.Layout)
		if err != nil {
			return nil, fmt.Errorf("fields[%d] (%s): %w", i, f.Name, err)
		}
		d.steps = append(d.steps, st)
		d.getters = append(d.getters, get)
	}

	return d, nil
}

// Registry returns the registry the decoder's readers must use.
func (d *Decoder) Registry() *linr.Registry {
	return d.reg
}

// NewReader opens a linr.Reader over in configured from the schema.
func (d *Decoder) NewReader(in io.Reader, out io.Writer) (*linr.Reader, error) {
	opts := []linr.Option{linr.WithRegistry(d.reg), linr.WithOutput(out)}
	if d.schema.Ephemeral {
		return linr.NewReader(in, opts...)
	}
	return linr.NewBufReader(in, d.schema.BufferSize, opts...)
}

// Decode reads one line from r and parses it into named values. The
// returned error carries a linr.Error code; on failure no values are
// returned.
func (d *Decoder) Decode(r *linr.Reader, opts ...linr.ReadOption) ([]Value, error) {
	opts = append([]linr.ReadOption{linr.Delim(d.schema.Delim())}, opts...)

	if d.schema.WholeLine() {
		res := r.ReadLine(opts...)
		if !res.OK() {
			return nil, res.Err()
		}
		f := d.schema.Fields[0]
		return []Value{{Name: f.Name, Type: TypeLine, Value: res.Value()}}, nil
	}

	if err := r.Scan(d.steps, opts...); err != nil {
		return nil, err
	}

	values := make([]Value, len(d.steps))
	for i, f := range d.schema.Fields {
		values[i] = Value{Name: f.Name, Type: FieldType(f.Type), Value: d.getters[i]()}
	}
	return values, nil
}

func newSlot(t FieldType, layout string) (linr.Step, func() any, error) {
	switch t {
	case TypeBool:
		return slot[bool](nil)
	case TypeChar:
		return slot(func(c linr.Char) any { return c.String() })
	case TypeInt:
		return slot[int](nil)
	case TypeInt8:
		return slot[int8](nil)
	case TypeInt16:
		return slot[int16](nil)
	case TypeInt32:
		return slot[int32](nil)
	case TypeInt64:
		return slot[int64](nil)
	case TypeUint:
		return slot[uint](nil)
	case TypeUint8:
		return slot[uint8](nil)
	case TypeUint16:
		return slot[uint16](nil)
	case TypeUint32:
		return slot[uint32](nil)
	case TypeUint64:
		return slot[uint64](nil)
	case TypeFloat32:
		return slot[float32](nil)
	case TypeFloat64:
		return slot[float64](nil)
	case TypeString:
		return slot[string](nil)
	case TypeDuration:
		return slot(func(v time.Duration) any { return v.String() })
	case TypeTime:
		return slot(func(v time.Time) any { return v.Format(layout) })
	default:
		return nil, nil, fmt.Errorf("type %q cannot be combined with other fields", t)
	}
}

// slot allocates storage for one field and returns the step that fills
// it together with a getter applying conv to the stored value.
func slot[T any](conv func(T) any) (linr.Step, func() any, error) {
	v := new(T)
	if conv == nil {
		return linr.Into(v), func() any { return *v }, nil
	}
	return linr.Into(v), func() any { return conv(*v) }, nil
}

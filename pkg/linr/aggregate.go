package linr

// The ParseFields functions parse fields strictly left to right and stop at
// the first failure, which is reported with its field index. Values are only
// exposed when every field parsed.

// ParseFields2 parses two fields into a Tuple2.
func ParseFields2[A, B any](reg *Registry, fields [][]byte) Result[Tuple2[A, B]] {
	if len(fields) != 2 {
		return Fail[Tuple2[A, B]](InvalidInput)
	}
	a := Parse[A](reg, fields[0])
	if !a.OK() {
		return failAt[Tuple2[A, B]](a.Code(), 0)
	}
	b := Parse[B](reg, fields[1])
	if !b.OK() {
		return failAt[Tuple2[A, B]](b.Code(), 1)
	}
	return Ok(Tuple2[A, B]{a.Value(), b.Value()})
}

// ParseFields3 parses three fields into a Tuple3.
func ParseFields3[A, B, C any](reg *Registry, fields [][]byte) Result[Tuple3[A, B, C]] {
	if len(fields) != 3 {
		return Fail[Tuple3[A, B, C]](InvalidInput)
	}
	a := Parse[A](reg, fields[0])
	if !a.OK() {
		return failAt[Tuple3[A, B, C]](a.Code(), 0)
	}
	b := Parse[B](reg, fields[1])
	if !b.OK() {
		return failAt[Tuple3[A, B, C]](b.Code(), 1)
	}
	c := Parse[C](reg, fields[2])
	if !c.OK() {
		return failAt[Tuple3[A, B, C]](c.Code(), 2)
	}
	return Ok(Tuple3[A, B, C]{a.Value(), b.Value(), c.Value()})
}

// ParseFields4 parses four fields into a Tuple4.
func ParseFields4[A, B, C, D any](reg *Registry, fields [][]byte) Result[Tuple4[A, B, C, D]] {
	if len(fields) != 4 {
		return Fail[Tuple4[A, B, C, D]](InvalidInput)
	}
	a := Parse[A](reg, fields[0])
	if !a.OK() {
		return failAt[Tuple4[A, B, C, D]](a.Code(), 0)
	}
	b := Parse[B](reg, fields[1])
	if !b.OK() {
		return failAt[Tuple4[A, B, C, D]](b.Code(), 1)
	}
	c := Parse[C](reg, fields[2])
	if !c.OK() {
		return failAt[Tuple4[A, B, C, D]](c.Code(), 2)
	}
	d := Parse[D](reg, fields[3])
	if !d.OK() {
		return failAt[Tuple4[A, B, C, D]](d.Code(), 3)
	}
	return Ok(Tuple4[A, B, C, D]{a.Value(), b.Value(), c.Value(), d.Value()})
}

// ParseFields5 parses five fields into a Tuple5.
func ParseFields5[A, B, C, D, E any](reg *Registry, fields [][]byte) Result[Tuple5[A, B, C, D, E]] {
	if len(fields) != 5 {
		return Fail[Tuple5[A, B, C, D, E]](InvalidInput)
	}
	a := Parse[A](reg, fields[0])
	if !a.OK() {
		return failAt[Tuple5[A, B, C, D, E]](a.Code(), 0)
	}
	b := Parse[B](reg, fields[1])
	if !b.OK() {
		return failAt[Tuple5[A, B, C, D, E]](b.Code(), 1)
	}
	c := Parse[C](reg, fields[2])
	if !c.OK() {
		return failAt[Tuple5[A, B, C, D, E]](c.Code(), 2)
	}
	d := Parse[D](reg, fields[3])
	if !d.OK() {
		return failAt[Tuple5[A, B, C, D, E]](d.Code(), 3)
	}
	e := Parse[E](reg, fields[4])
	if !e.OK() {
		return failAt[Tuple5[A, B, C, D, E]](e.Code(), 4)
	}
	return Ok(Tuple5[A, B, C, D, E]{a.Value(), b.Value(), c.Value(), d.Value(), e.Value()})
}

// ParseArray parses every field as a T. The arity is len(fields), which must
// be at least one.
func ParseArray[T any](reg *Registry, fields [][]byte) Result[[]T] {
	if len(fields) == 0 {
		return Fail[[]T](InvalidInput)
	}
	values := make([]T, len(fields))
	for i, field := range fields {
		res := Parse[T](reg, field)
		if !res.OK() {
			return failAt[[]T](res.Code(), i)
		}
		values[i] = res.Value()
	}
	return Ok(values)
}

// Step is one typed field of a heterogeneous read whose shape is only known
// at run time. Create steps with Into.
type Step interface {
	parse(reg *Registry, field []byte) Error
	commit()
}

type step[T any] struct {
	dst    *T
	staged T
}

// Into returns a Step parsing one field as a T and storing it in *dst.
// A nil dst parses and validates the field but discards the value.
func Into[T any](dst *T) Step {
	return &step[T]{dst: dst}
}

func (s *step[T]) parse(reg *Registry, field []byte) Error {
	res := Parse[T](reg, field)
	if !res.OK() {
		return res.Code()
	}
	s.staged = res.Value()
	return 0
}

func (s *step[T]) commit() {
	if s.dst != nil {
		*s.dst = s.staged
	}
}

// ParseInto runs steps over fields in order. Destinations are written only
// when every step succeeds; otherwise the first failure is returned as a
// *FieldError and no destination changes.
func ParseInto(reg *Registry, fields [][]byte, steps ...Step) error {
	if len(steps) == 0 || len(fields) != len(steps) {
		return InvalidInput
	}
	for i, s := range steps {
		if code := s.parse(reg, fields[i]); code != 0 {
			return &FieldError{Index: i, Code: code}
		}
	}
	for _, s := range steps {
		s.commit()
	}
	return nil
}

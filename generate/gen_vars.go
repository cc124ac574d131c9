package generate

import (
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// DeclareVariable allocates the storage of a scalar binding.  Globals are
// declared in the header; locals get a stack slot at the top of the current
// function.  Both start out zero.
func (g *Generator) DeclareVariable(b sem.Binding) error {
	return g.declareStorage(b, true)
}

// DeclareField allocates the storage of a scalar field of an instance.
func (g *Generator) DeclareField(f *sem.Global) error {
	if f.Instance == "" {
		report.ReportICE("field %s declared without an instance", f.Name)
	}

	return g.declareStorage(f, true)
}

func (g *Generator) declareStorage(b sem.Binding, zero bool) error {
	if !b.DataType().Lowered() {
		return g.src.Raise(report.TypeMismatch, "variables of type %s are not supported", b.DataType())
	}

	dt := b.DataType().Storage()
	switch v := b.(type) {
	case *sem.Global:
		if v.Object != typing.Variable {
			report.ReportICE("%s declared as a scalar global", v.Object)
		}

		g.out.AppendToHeader(v.Storage() + " = global " + dt.LLName() + " " + dt.ZeroValue() + "\n")
	case *sem.Local:
		if !g.InFunction() {
			report.ReportICE("local %s declared outside of a function body", v.Name)
		}

		g.hoist(v.Storage(), dt)
		if zero {
			g.store(dt, dt.ZeroValue(), v.Storage())
		}
	default:
		report.ReportICE("declared storage of %T", b)
	}

	return nil
}

// rebind returns the binding that must hold a value of type dt.  A binding
// whose storage type differs gets a new version with its own storage; an
// unresolved binding of the same storage type is merely given a type.
func (g *Generator) rebind(b sem.Binding, dt typing.DataType) (sem.Binding, error) {
	if b.DataType().Storage() == dt.Storage() {
		if b.DataType() != typing.None || dt == typing.None {
			return b, nil
		}

		// an unresolved binding takes the type of its first value
		switch v := b.(type) {
		case *sem.Global:
			return v.WithVersion(v.Version, dt), nil
		case *sem.Local:
			return v.WithVersion(v.Version, dt), nil
		}
	}

	var nb sem.Binding
	switch v := b.(type) {
	case *sem.Global:
		nb = v.WithVersion(v.Version+1, dt)
	case *sem.Local:
		nb = v.WithVersion(v.Version+1, dt)
	default:
		report.ReportICE("rebinding %T", b)
	}

	if err := g.declareStorage(nb, false); err != nil {
		return nil, err
	}

	return nb, nil
}

// Assign stores a value in a binding or an array element.  It returns the
// binding now holding the value: a new version of left if the value's type
// requires different storage.  Array elements must be assigned values of the
// array's type.
func (g *Generator) Assign(left sem.Binding, right sem.Operand) (sem.Binding, error) {
	if err := g.checkLowered(right); err != nil {
		return nil, err
	}

	dt := right.DataType()
	if gl, ok := left.(*sem.Global); ok {
		switch gl.Object {
		case typing.Array:
			return nil, g.src.Raise(report.TypeMismatch, "cannot assign a value to array %s", gl.Name)
		case typing.ArrayElement:
			if dt.Storage() != gl.Type.Storage() {
				return nil, g.src.Raise(report.TypeMismatch, "assigning %s to an element of %s array %s", dt, gl.Type, gl.Name)
			}

			val, err := g.value(right)
			if err != nil {
				return nil, err
			}

			ptr, err := g.elementPointer(gl)
			if err != nil {
				return nil, err
			}

			g.store(gl.Type.Storage(), val, ptr)
			return gl, nil
		}
	}

	target, err := g.rebind(left, dt)
	if err != nil {
		return nil, err
	}

	val, err := g.value(right)
	if err != nil {
		return nil, err
	}

	g.store(dt.Storage(), val, target.Storage())
	return target, nil
}

// DeclareArray declares a zero-initialized program-level array and stores its
// initial elements.  A length of zero means the length is the number of
// initial elements.
func (g *Generator) DeclareArray(arr *sem.Global, length int, elems []sem.Operand) (*sem.Global, error) {
	if g.InFunction() {
		return nil, g.src.Raise(report.ScopeViolation, "array %s declared inside the body of %s", arr.Name, g.fn.sig.Name)
	}

	if !arr.Type.Lowered() {
		return nil, g.src.Raise(report.TypeMismatch, "arrays of type %s are not supported", arr.Type)
	}

	if length == 0 {
		length = len(elems)
	}

	if length <= 0 {
		return nil, g.src.Raise(report.TypeMismatch, "array %s must have a positive length", arr.Name)
	}

	if len(elems) > length {
		return nil, g.src.Raise(
			report.ArrayOverflow,
			"assigning %d elements to array %s of length %d",
			len(elems),
			arr.Name,
			length,
		)
	}

	dt := arr.Type.Storage()
	for i, elem := range elems {
		if elem.DataType().Storage() != dt {
			return nil, g.src.Raise(
				report.TypeMismatch,
				"element no. %d of array %s is %s, expected %s",
				i+1,
				arr.Name,
				elem.DataType(),
				arr.Type,
			)
		}
	}

	na := *arr
	na.Object = typing.Array
	na.Length = length
	g.out.AppendToHeader(na.Storage() + " = global " + dt.LLArray(length) + " zeroinitializer\n")

	for i, elem := range elems {
		if _, err := g.Assign(na.Element(sem.IntLiteral(int64(i))), elem); err != nil {
			return nil, err
		}
	}

	return &na, nil
}

package generate

import (
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// Print prints a value followed by a newline.
func (g *Generator) Print(op sem.Operand) error {
	r, err := g.Materialize(op)
	if err != nil {
		return err
	}

	val := g.load(r)

	format := g.rt.PrintInt
	if r.Type == typing.Real {
		format = g.rt.PrintReal
	}

	n := g.reg()
	g.emit(
		"%%%d = call i32 (i8*, ...) %s(i8* getelementptr inbounds ([4 x i8], [4 x i8]* %s, i32 0, i32 0), %s %s)",
		n,
		g.rt.Printf,
		format,
		r.Type.LLName(),
		val,
	)

	return nil
}

// Scan reads a value of type dt into a binding or an array element.  It
// returns the binding now holding the value: a new version of target if dt
// requires different storage.
func (g *Generator) Scan(dt typing.DataType, target sem.Binding) (sem.Binding, error) {
	dt = dt.Storage()
	if !dt.Lowered() {
		return nil, g.src.Raise(report.TypeMismatch, "cannot scan a value of type %s", dt)
	}

	var ptr string
	if gl, ok := target.(*sem.Global); ok && gl.Object != typing.Variable {
		if gl.Object == typing.Array {
			return nil, g.src.Raise(report.TypeMismatch, "cannot scan into array %s", gl.Name)
		}

		if gl.Type.Storage() != dt {
			return nil, g.src.Raise(report.TypeMismatch, "scanning %s into an element of %s array %s", dt, gl.Type, gl.Name)
		}

		p, err := g.elementPointer(gl)
		if err != nil {
			return nil, err
		}
		ptr = p
	} else {
		nt, err := g.rebind(target, dt)
		if err != nil {
			return nil, err
		}

		target = nt
		ptr = target.Storage()
	}

	format, formatType := g.rt.ScanInt, "[3 x i8]"
	if dt == typing.Real {
		format, formatType = g.rt.ScanReal, "[4 x i8]"
	}

	n := g.reg()
	g.emit(
		"%%%d = call i32 (i8*, ...) %s(i8* getelementptr inbounds (%s, %s* %s, i32 0, i32 0), %s %s)",
		n,
		g.rt.Scanf,
		formatType,
		formatType,
		format,
		dt.LLPointer(),
		ptr,
	)

	return target, nil
}

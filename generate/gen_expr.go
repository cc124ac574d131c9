package generate

import (
	"fmt"
	"strconv"

	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// value generates the instructions needed to read an operand and returns the
// LLVM spelling of its value.  Literals produce no instructions.
func (g *Generator) value(op sem.Operand) (string, error) {
	if err := g.checkLowered(op); err != nil {
		return "", err
	}

	switch v := op.(type) {
	case *sem.Literal:
		return v.Text, nil
	case *sem.Register:
		return g.load(v), nil
	case *sem.Global:
		if v.Object == typing.ArrayElement {
			ptr, err := g.elementPointer(v)
			if err != nil {
				return "", err
			}

			return g.loadFrom(v.Type.Storage(), ptr), nil
		}

		return g.loadFrom(v.Type.Storage(), v.Storage()), nil
	case *sem.Local:
		return g.loadFrom(v.Type.Storage(), v.Storage()), nil
	}

	report.ReportICE("value of unknown operand %T", op)
	return "", nil
}

// loadFrom loads a value of type dt from a pointer.
func (g *Generator) loadFrom(dt typing.DataType, ptr string) string {
	n := g.reg()
	t := dt.LLName()
	g.emit("%%%d = load %s, %s* %s", n, t, t, ptr)
	return fmt.Sprintf("%%%d", n)
}

// elementPointer computes the address of an array element.  The index is
// widened to 64 bits and used to address the array's declared type.
func (g *Generator) elementPointer(el *sem.Global) (string, error) {
	idx, err := g.value(el.Index)
	if err != nil {
		return "", err
	}

	wide := g.reg()
	g.emit("%%%d = sext i32 %s to i64", wide, idx)

	ptr := g.reg()
	arrType := el.Type.LLArray(el.Length)
	g.emit("%%%d = getelementptr inbounds %s, %s* %s, i64 0, i64 %%%d", ptr, arrType, arrType, el.Storage(), wide)

	return fmt.Sprintf("%%%d", ptr), nil
}

// -----------------------------------------------------------------------------

// Materialize forces an operand into a fresh stack slot holding its current
// value.  Registers are already slots and are returned as is.
func (g *Generator) Materialize(op sem.Operand) (*sem.Register, error) {
	if r, ok := op.(*sem.Register); ok {
		return r, nil
	}

	if err := g.checkLowered(op); err != nil {
		return nil, err
	}

	slot := g.alloca(op.DataType().Storage())

	val, err := g.value(op)
	if err != nil {
		return nil, err
	}

	g.store(slot.Type, val, slot.Storage())
	return slot, nil
}

// store stores a value of type dt to a pointer.
func (g *Generator) store(dt typing.DataType, val, ptr string) {
	t := dt.LLName()
	g.emit("store %s %s, %s* %s", t, val, t, ptr)
}

// Cast converts the value held by a register to another type.  Integers are
// converted to reals with `sitofp` and reals are truncated to integers with
// `fptosi`.  A register already of the target type is returned as is.
func (g *Generator) Cast(r *sem.Register, to typing.DataType) *sem.Register {
	from := r.Type.Storage()
	to = to.Storage()
	if from == to {
		return r
	}

	slot := g.alloca(to)
	val := g.load(r)

	var conv string
	if to == typing.Real {
		conv = "sitofp"
	} else {
		conv = "fptosi"
	}

	n := g.reg()
	g.emit("%%%d = %s %s %s to %s", n, conv, from.LLName(), val, to.LLName())
	g.store(to, fmt.Sprintf("%%%d", n), slot.Storage())

	return slot
}

// widen materializes two operands and converts both of them to reals if either
// of them is real or if force is set.
func (g *Generator) widen(left, right sem.Operand, force bool) (*sem.Register, *sem.Register, error) {
	l, err := g.Materialize(left)
	if err != nil {
		return nil, nil, err
	}

	r, err := g.Materialize(right)
	if err != nil {
		return nil, nil, err
	}

	if force || l.Type == typing.Real || r.Type == typing.Real {
		l = g.Cast(l, typing.Real)
		r = g.Cast(r, typing.Real)
	}

	return l, r, nil
}

// Arithmetic applies a binary arithmetic operator.  Division always operates
// on reals and so always produces a real.
func (g *Generator) Arithmetic(left sem.Operand, op typing.ArithOp, right sem.Operand) (*sem.Register, error) {
	l, r, err := g.widen(left, right, op == typing.Div)
	if err != nil {
		return nil, err
	}

	dt := l.Type
	opcode, err := op.Opcode(dt)
	if err != nil {
		report.ReportICE("%s on %s operands", op, dt)
	}

	result := g.alloca(dt)
	lval := g.load(l)
	rval := g.load(r)

	n := g.reg()
	g.emit("%%%d = %s %s %s, %s", n, opcode, dt.LLName(), lval, rval)
	g.store(dt, fmt.Sprintf("%%%d", n), result.Storage())

	return result, nil
}

// Element returns a reference to the element of an array at an index.  The
// index must be an integer.  Constant indices are checked against the length
// of the array; other indices are not checked.
func (g *Generator) Element(arr sem.Binding, index sem.Operand) (*sem.Global, error) {
	ga, ok := arr.(*sem.Global)
	if !ok || ga.Object != typing.Array {
		return nil, g.src.Raise(report.TypeMismatch, "%s is not an array", arr.BindingName())
	}

	if index.DataType().Storage() != typing.Int {
		return nil, g.src.Raise(report.TypeMismatch, "index of array %s is %s, expected %s", ga.Name, index.DataType(), typing.Int)
	}

	if err := g.checkLowered(index); err != nil {
		return nil, err
	}

	if lit, ok := index.(*sem.Literal); ok {
		n, _ := strconv.Atoi(lit.Text)

		if n < 0 || n >= ga.Length {
			return nil, g.src.Raise(report.ArrayOverflow, "index %d is out of bounds of array %s of length %d", n, ga.Name, ga.Length)
		}
	}

	return ga.Element(index), nil
}

package walk

import (
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

func (w *Walker) walkDeclareVariable(cmd sem.Command) error {
	var init sem.Operand
	if cmd.HasInit {
		op, err := w.pop()
		if err != nil {
			return err
		}

		init = op
	}

	// a variable with an initializer starts out with the initializer's type
	dt := typing.None
	if init != nil {
		dt = init.DataType()
	}

	var b sem.Binding
	switch {
	case w.gen.InFunction():
		l := &sem.Local{Name: cmd.Name, Type: dt}
		if err := w.table.DeclareLocal(l); err != nil {
			return err
		}

		if err := w.gen.DeclareVariable(l); err != nil {
			return err
		}

		b = l
	case w.table.Instance() != nil:
		inst := w.table.Instance()
		f := sem.NewGlobal(cmd.Name, dt).ForInstance(inst.Name)
		f.Owner = inst.Class
		if err := w.table.DeclareField(f); err != nil {
			return err
		}

		if err := w.gen.DeclareField(f); err != nil {
			return err
		}

		b = f
	default:
		g := sem.NewGlobal(cmd.Name, dt)
		if err := w.table.DeclareGlobal(g); err != nil {
			return err
		}

		if err := w.gen.DeclareVariable(g); err != nil {
			return err
		}

		b = g
	}

	if init != nil {
		return w.assign(b, init)
	}

	return nil
}

// assign assigns a value to a binding and installs the binding now holding it.
func (w *Walker) assign(b sem.Binding, value sem.Operand) error {
	nb, err := w.gen.Assign(b, value)
	if err != nil {
		return err
	}

	w.table.Rebind(nb)
	return nil
}

func (w *Walker) walkDeclareArray(cmd sem.Command) error {
	elems, err := w.popN(cmd.Count)
	if err != nil {
		return err
	}

	if w.gen.InFunction() {
		return w.src.Raise(report.ScopeViolation, "array %s declared inside the body of %s", cmd.Name, w.fn.Name)
	}

	if err := w.scalarType(cmd.Type, "array", cmd.Name); err != nil {
		return err
	}

	if cmd.Length < 0 {
		return w.src.Raise(report.TypeMismatch, "array %s must have a positive length", cmd.Name)
	}

	length := cmd.Length
	if length == 0 {
		length = len(elems)
	}

	arr := sem.NewArray(cmd.Name, cmd.Type, length)
	if inst := w.table.Instance(); inst != nil {
		arr = arr.ForInstance(inst.Name)
		arr.Owner = inst.Class
		err = w.table.DeclareField(arr)
	} else {
		err = w.table.DeclareGlobal(arr)
	}

	if err != nil {
		return err
	}

	na, err := w.gen.DeclareArray(arr, length, elems)
	if err != nil {
		return err
	}

	w.table.Rebind(na)
	return nil
}

func (w *Walker) walkAssign(cmd sem.Command) error {
	value, err := w.pop()
	if err != nil {
		return err
	}

	b, err := w.table.Lookup(cmd.Name)
	if err != nil {
		return err
	}

	return w.assign(b, value)
}

func (w *Walker) walkAssignElement(cmd sem.Command) error {
	index, value, err := w.popPair()
	if err != nil {
		return err
	}

	el, err := w.element(cmd.Name, index)
	if err != nil {
		return err
	}

	_, err = w.gen.Assign(el, value)
	return err
}

func (w *Walker) walkAssignMember(cmd sem.Command) error {
	value, err := w.pop()
	if err != nil {
		return err
	}

	f, err := w.field(cmd.Target, cmd.Name)
	if err != nil {
		return err
	}

	return w.assign(f, value)
}

func (w *Walker) walkPrint(cmd sem.Command) error {
	op, err := w.pop()
	if err != nil {
		return err
	}

	return w.gen.Print(op)
}

func (w *Walker) walkScan(cmd sem.Command) error {
	if err := w.scalarType(cmd.Type.Storage(), "scanned value", cmd.Name); err != nil {
		return err
	}

	b, err := w.table.Lookup(cmd.Name)
	if err != nil {
		return err
	}

	nb, err := w.gen.Scan(cmd.Type, b)
	if err != nil {
		return err
	}

	w.table.Rebind(nb)
	return nil
}

func (w *Walker) walkCompare(cmd sem.Command) error {
	kind, ok := typing.ParseCompareKind(cmd.Text)
	if !ok {
		return w.src.Raise(report.TypeMismatch, "unknown comparison operator `%s`", cmd.Text)
	}

	left, right, err := w.popPair()
	if err != nil {
		return err
	}

	return w.gen.Compare(left, kind, right)
}

func (w *Walker) walkReturn(cmd sem.Command) error {
	op, err := w.pop()
	if err != nil {
		return err
	}

	if err := w.gen.Return(op); err != nil {
		return err
	}

	w.returned = true
	return nil
}

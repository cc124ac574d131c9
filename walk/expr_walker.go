package walk

import (
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

func (w *Walker) walkInt(cmd sem.Command) error {
	lit, err := sem.NewIntLiteral(cmd.Text)
	if err != nil {
		return w.src.Raise(report.TypeMismatch, "%s", err)
	}

	w.push(lit)
	return nil
}

func (w *Walker) walkReal(cmd sem.Command) error {
	lit, err := sem.NewRealLiteral(cmd.Text)
	if err != nil {
		return w.src.Raise(report.TypeMismatch, "%s", err)
	}

	w.push(lit)
	return nil
}

func (w *Walker) walkName(cmd sem.Command) error {
	b, err := w.table.Lookup(cmd.Name)
	if err != nil {
		return err
	}

	w.push(b)
	return nil
}

func (w *Walker) walkElement(cmd sem.Command) error {
	index, err := w.pop()
	if err != nil {
		return err
	}

	el, err := w.element(cmd.Name, index)
	if err != nil {
		return err
	}

	w.push(el)
	return nil
}

// element resolves an element of a named array.
func (w *Walker) element(name string, index sem.Operand) (*sem.Global, error) {
	arr, err := w.table.Lookup(name)
	if err != nil {
		return nil, err
	}

	return w.gen.Element(arr, index)
}

// field resolves a field of a named instance.
func (w *Walker) field(instName, name string) (*sem.Global, error) {
	inst, err := w.table.LookupInstance(instName)
	if err != nil {
		return nil, err
	}

	f, ok := inst.Fields[name]
	if !ok {
		return nil, w.src.Raise(report.UnknownIdentifier, "instance %s has no field %s", instName, name)
	}

	return f, nil
}

func (w *Walker) walkMember(cmd sem.Command) error {
	f, err := w.field(cmd.Target, cmd.Name)
	if err != nil {
		return err
	}

	w.push(f)
	return nil
}

func (w *Walker) walkArithmetic(cmd sem.Command) error {
	op, ok := typing.ParseArithOp(cmd.Text)
	if !ok {
		return w.src.Raise(report.TypeMismatch, "unknown arithmetic operator `%s`", cmd.Text)
	}

	left, right, err := w.popPair()
	if err != nil {
		return err
	}

	r, err := w.gen.Arithmetic(left, op, right)
	if err != nil {
		return err
	}

	w.push(r)
	return nil
}

func (w *Walker) walkCall(cmd sem.Command) error {
	args, err := w.popN(cmd.Count)
	if err != nil {
		return err
	}

	// inside the body of an instance, a bare call names a method of the
	// instance before it names a function
	if inst := w.table.Instance(); inst != nil {
		if m, ok := w.table.Class(inst.Class).Methods[cmd.Name]; ok {
			r, err := w.gen.CallMethod(inst.Name, m, args)
			if err != nil {
				return err
			}

			w.push(r)
			return nil
		}
	}

	sig, err := w.table.LookupFunction(cmd.Name)
	if err != nil {
		return err
	}

	r, err := w.gen.CallFunction(sig, args)
	if err != nil {
		return err
	}

	w.push(r)
	return nil
}

func (w *Walker) walkCallMethod(cmd sem.Command) error {
	args, err := w.popN(cmd.Count)
	if err != nil {
		return err
	}

	inst, err := w.table.LookupInstance(cmd.Target)
	if err != nil {
		return err
	}

	m, ok := w.table.Class(inst.Class).Methods[cmd.Name]
	if !ok {
		return w.src.Raise(report.UnknownIdentifier, "instance %s has no method %s", inst.Name, cmd.Name)
	}

	r, err := w.gen.CallMethod(inst.Name, m, args)
	if err != nil {
		return err
	}

	w.push(r)
	return nil
}

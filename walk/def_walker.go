package walk

import (
	"mkc/report"
	"mkc/sem"
)

func (w *Walker) walkDeclareFunction(cmd sem.Command) error {
	if w.gen.InFunction() {
		return w.src.Raise(report.ScopeViolation, "declaring function %s inside the body of %s", cmd.Name, w.fn.Name)
	}

	var (
		sig    *sem.Method
		locals []*sem.Local
		err    error
	)

	if inst := w.table.Instance(); inst != nil {
		// methods were declared when the class body was recorded
		sig = w.table.Class(inst.Class).Methods[cmd.Name]
		locals, err = w.gen.DeclareMethod(inst.Name, sig, cmd.Params)
	} else {
		if err := w.checkSignature(cmd); err != nil {
			return err
		}

		sig = sem.NewMethod(cmd.Name, cmd.Type, cmd.Params)
		if err := w.table.DeclareFunction(sig); err != nil {
			return err
		}

		locals, err = w.gen.DeclareFunction(sig, cmd.Params)
	}

	if err != nil {
		return err
	}

	w.table.EnterFunction()
	for _, l := range locals {
		if err := w.table.DeclareLocal(l); err != nil {
			return err
		}
	}

	w.fn = sig
	w.returned = false
	return nil
}

// checkSignature checks the declared types of a function or a method.
func (w *Walker) checkSignature(cmd sem.Command) error {
	if err := w.scalarType(cmd.Type, "return type of", cmd.Name); err != nil {
		return err
	}

	for _, p := range cmd.Params {
		if err := w.scalarType(p.Type, "parameter", p.Name); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) walkEndFunction(cmd sem.Command) error {
	if w.fn == nil {
		return w.src.Raise(report.ScopeViolation, "closing a function outside of a function body")
	}

	if !w.returned {
		return w.src.Raise(report.MissingReturn, "function %s has no return statement", w.fn.Name)
	}

	if err := w.gen.EndFunction(); err != nil {
		return err
	}

	w.table.LeaveFunction()
	w.fn = nil
	return nil
}

// -----------------------------------------------------------------------------

func (w *Walker) walkBeginClass(cmd sem.Command) error {
	if w.gen.InFunction() {
		return w.src.Raise(report.ScopeViolation, "declaring class %s inside the body of %s", cmd.Name, w.fn.Name)
	}

	c, err := w.table.DeclareClass(cmd.Name)
	if err != nil {
		return err
	}

	w.class = c
	w.recordFn = nil
	return nil
}

func (w *Walker) walkEndClass(cmd sem.Command) error {
	if w.class == nil {
		return w.src.Raise(report.ScopeViolation, "closing a class outside of a class body")
	}

	if w.recordFn != nil {
		return w.src.Raise(report.ScopeViolation, "class %s ends inside the body of method %s", w.class.Name, w.recordFn.Name)
	}

	w.class.Freeze()
	w.class = nil
	return nil
}

// walkDeclareInstance declares an instance and replays the body of its class
// with the instance set: every field and method gets storage and code of its
// own, named after the instance.
func (w *Walker) walkDeclareInstance(cmd sem.Command) error {
	if w.gen.InFunction() {
		return w.src.Raise(report.ScopeViolation, "declaring instance %s inside the body of %s", cmd.Name, w.fn.Name)
	}

	inst, err := w.table.DeclareInstance(cmd.Name, cmd.Target)
	if err != nil {
		return err
	}

	w.table.SetInstance(inst)
	defer w.table.SetInstance(nil)

	for _, rc := range w.table.Class(inst.Class).Commands {
		if err := w.dispatch(rc); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) walkEndProgram(cmd sem.Command) error {
	if w.fn != nil {
		return w.src.Raise(report.ScopeViolation, "program ends inside the body of %s", w.fn.Name)
	}

	program, err := w.gen.Finish()
	if err != nil {
		return err
	}

	w.program = program
	w.ended = true
	return nil
}

// -----------------------------------------------------------------------------

// record records a notification in the body of the open class.  Declarations
// are checked as they are recorded so that errors in a class body are
// reported even if the class is never instantiated.
func (w *Walker) record(cmd sem.Command) error {
	c := w.class

	switch cmd.Kind {
	case sem.CmdBeginClass:
		return w.src.Raise(report.ScopeViolation, "declaring class %s inside the body of class %s", cmd.Name, c.Name)
	case sem.CmdDeclareInstance:
		return w.src.Raise(report.ScopeViolation, "declaring instance %s inside the body of class %s", cmd.Name, c.Name)
	case sem.CmdEndProgram:
		return w.src.Raise(report.ScopeViolation, "program ends inside the body of class %s", c.Name)
	case sem.CmdDeclareFunction:
		if w.recordFn != nil {
			return w.src.Raise(report.ScopeViolation, "declaring method %s inside the body of %s", cmd.Name, w.recordFn.Name)
		}

		if err := w.checkSignature(cmd); err != nil {
			return err
		}

		m := sem.NewMethod(cmd.Name, cmd.Type, cmd.Params)
		if err := w.table.DeclareClassMethod(c, m); err != nil {
			return err
		}

		w.recordFn = m
		w.recordReturned = false
	case sem.CmdEndFunction:
		if w.recordFn == nil {
			return w.src.Raise(report.ScopeViolation, "closing a method outside of a method body")
		}

		if !w.recordReturned {
			return w.src.Raise(report.MissingReturn, "method %s of class %s has no return statement", w.recordFn.Name, c.Name)
		}

		w.recordFn = nil
	case sem.CmdReturn:
		if w.recordFn == nil {
			return w.src.Raise(report.ScopeViolation, "returning outside of a method body in class %s", c.Name)
		}

		w.recordReturned = true
	case sem.CmdBeginCondition, sem.CmdCompare, sem.CmdEndIf, sem.CmdEndWhile:
		if w.recordFn == nil {
			return w.src.Raise(report.ScopeViolation, "control flow outside of a method body in class %s", c.Name)
		}
	case sem.CmdDeclareVariable:
		if w.recordFn == nil {
			if err := w.table.DeclareClassField(c, sem.NewGlobal(cmd.Name, cmd.Type)); err != nil {
				return err
			}
		}
	case sem.CmdDeclareArray:
		if w.recordFn != nil {
			return w.src.Raise(report.ScopeViolation, "array %s declared inside the body of method %s", cmd.Name, w.recordFn.Name)
		}

		if err := w.table.DeclareClassField(c, sem.NewArray(cmd.Name, cmd.Type, cmd.Length)); err != nil {
			return err
		}
	}

	if !c.Record(cmd) {
		report.ReportICE("recording into closed class %s", c.Name)
	}

	return nil
}

package generate

import (
	"fmt"
	"strings"

	"mkc/output"
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// DeclareFunction opens the body of a function.  It returns the local bindings
// of the parameters: each one is already stored with its incoming argument.
func (g *Generator) DeclareFunction(sig *sem.Method, params []sem.Param) ([]*sem.Local, error) {
	return g.declare("@func_"+sig.Name, sig, params)
}

// DeclareMethod opens the body of a method of an instance.
func (g *Generator) DeclareMethod(inst string, sig *sem.Method, params []sem.Param) ([]*sem.Local, error) {
	return g.declare(methodName(inst, sig.Name), sig, params)
}

// methodName returns the LLVM name of the method of an instance.
func methodName(inst, method string) string {
	return fmt.Sprintf("@method_%s.%s", inst, method)
}

// declare generates the definition line and the parameter prologue of a
// function or a method.
func (g *Generator) declare(llName string, sig *sem.Method, params []sem.Param) ([]*sem.Local, error) {
	if g.InFunction() {
		return nil, g.src.Raise(report.ScopeViolation, "declaring %s inside the body of %s", sig.Name, g.fn.sig.Name)
	}

	if !sig.ReturnType.Lowered() || sig.ReturnType == typing.None {
		return nil, g.src.Raise(report.TypeMismatch, "return type of %s must be %s or %s", sig.Name, typing.Int, typing.Real)
	}

	for _, p := range params {
		if !p.Type.Lowered() || p.Type == typing.None {
			return nil, g.src.Raise(report.TypeMismatch, "parameter %s of %s must be %s or %s", p.Name, sig.Name, typing.Int, typing.Real)
		}
	}

	g.fn = newFuncContext(sig, output.Functions, len(params))
	g.out.Switch(output.Functions)

	// the parameter prologue is generated before the definition line is
	// written: the line is placed in front of it on release
	g.out.Hold()

	locals := make([]*sem.Local, len(params))
	paramTypes := make([]string, len(params))
	for i, p := range params {
		local := &sem.Local{Name: p.Name, Type: p.Type}
		locals[i] = local
		paramTypes[i] = p.Type.LLName()

		g.emit("%s = alloca %s", local.Storage(), p.Type.LLName())
		g.store(p.Type, fmt.Sprintf("%%%d", i), local.Storage())
	}

	prologue := g.out.Release()
	g.out.Append(fmt.Sprintf(
		"\ndefine %s %s(%s) nounwind {\n%s",
		sig.ReturnType.LLName(),
		llName,
		strings.Join(paramTypes, ", "),
		prologue,
	))
	g.fn.slots = g.out.Mark()

	return locals, nil
}

// EndFunction closes the body of the current function or method.  A body which
// does not end in a terminator is closed with `unreachable`: every path out of
// a function must pass through a return.
func (g *Generator) EndFunction() error {
	if !g.InFunction() {
		return g.src.Raise(report.ScopeViolation, "closing a function outside of a function body")
	}

	if len(g.fn.pending) > 0 || g.ConditionOpen() {
		return g.src.Raise(report.ScopeViolation, "body of %s ends inside an unclosed control construct", g.fn.sig.Name)
	}

	if !g.fn.detached {
		g.emit("unreachable")
	}

	g.out.Append("}\n")

	g.fn = g.entry
	g.out.Switch(output.EntryBody)
	return nil
}

// Return returns a value from the current function.  The value is converted to
// the declared return type of the function if it differs.
func (g *Generator) Return(op sem.Operand) error {
	if !g.InFunction() {
		return g.src.Raise(report.ScopeViolation, "returning outside of a function body")
	}

	// the value instructions are captured so the return can be placed behind
	// them once its operand register is known
	rt := g.fn.sig.ReturnType.Storage()
	g.out.Hold()

	r, err := g.Materialize(op)
	if err != nil {
		g.out.Release()
		return err
	}

	val := g.load(g.Cast(r, rt))
	body := g.out.Release()

	g.out.Append(body + fmt.Sprintf("  ret %s %s\n", rt.LLName(), val))
	g.fn.detached = true
	return nil
}

// -----------------------------------------------------------------------------

// checkArgs checks the arguments of a call against the callee's signature.
func (g *Generator) checkArgs(sig *sem.Method, args []sem.Operand) error {
	if len(args) != len(sig.Params) {
		return g.src.Raise(
			report.ArityMismatch,
			"%s expects %d arguments, got %d",
			sig.Name,
			len(sig.Params),
			len(args),
		)
	}

	for i, arg := range args {
		if arg.DataType().Storage() != sig.Params[i].Storage() {
			return g.src.Raise(
				report.TypeMismatch,
				"argument no. %d of %s type is %s, expected %s",
				i+1,
				sig.Name,
				arg.DataType(),
				sig.Params[i],
			)
		}
	}

	return nil
}

// call generates a call instruction and returns the result value.
func (g *Generator) call(llName string, sig *sem.Method, args []sem.Operand) (string, error) {
	if err := g.checkArgs(sig, args); err != nil {
		return "", err
	}

	argVals := make([]string, len(args))
	for i, arg := range args {
		r, err := g.Materialize(arg)
		if err != nil {
			return "", err
		}

		argVals[i] = r.Type.LLName() + " " + g.load(r)
	}

	n := g.reg()
	g.emit("%%%d = call %s %s(%s)", n, sig.ReturnType.LLName(), llName, strings.Join(argVals, ", "))

	return fmt.Sprintf("%%%d", n), nil
}

// CallFunction calls a function and returns a register holding its result.
func (g *Generator) CallFunction(sig *sem.Method, args []sem.Operand) (*sem.Register, error) {
	res, err := g.call("@func_"+sig.Name, sig, args)
	if err != nil {
		return nil, err
	}

	slot := g.alloca(sig.ReturnType)
	g.store(sig.ReturnType, res, slot.Storage())
	return slot, nil
}

// CallMethod calls a method of an instance.  The result is stored in a slot
// named after the instance and the method which is allocated once per
// function and reused by every call to the same method.
func (g *Generator) CallMethod(inst string, sig *sem.Method, args []sem.Operand) (*sem.Register, error) {
	res, err := g.call(methodName(inst, sig.Name), sig, args)
	if err != nil {
		return nil, err
	}

	slot := &sem.Local{Name: fmt.Sprintf("ret.%s.%s", inst, sig.Name), Type: sig.ReturnType}
	if _, ok := g.fn.temps[slot.Name]; !ok {
		g.hoist(slot.Storage(), sig.ReturnType)
		g.fn.temps[slot.Name] = struct{}{}
	}

	g.store(sig.ReturnType, res, slot.Storage())
	return g.Materialize(slot)
}

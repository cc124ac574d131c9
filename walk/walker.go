package walk

import (
	"tlog.app/go/errors"

	"mkc/config"
	"mkc/generate"
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// Walker consumes the construct notifications of one program in the order the
// constructs close in the source.  It owns the operand stack threading values
// between constructs and turns every notification into symbol table and
// generator calls.
type Walker struct {
	// src is the position shared with the symbol table and the generator.
	src *report.Source

	table *sem.Table
	gen   *generate.Generator

	// stack is the operand stack.
	stack []sem.Operand

	// fn is the signature of the function or method body being walked.
	fn *sem.Method

	// returned indicates whether or not the body being walked has a return.
	returned bool

	// class is the class whose body is being recorded.
	class *sem.Class

	// recordFn is the method being recorded in the class body.
	recordFn *sem.Method

	// recordReturned indicates whether or not the method being recorded has a
	// return.
	recordReturned bool

	// program is the generated program once the walk has ended.
	program string

	// ended indicates whether or not the end of the program was reached.
	ended bool
}

// New creates a new walker for a program read from file.
func New(file string, rt *config.Runtime) *Walker {
	src := &report.Source{File: file}

	return &Walker{
		src:   src,
		table: sem.NewTable(src),
		gen:   generate.New(src, rt),
	}
}

// Program returns the generated program.  It is empty until the end of the
// program has been walked.
func (w *Walker) Program() string {
	return w.program
}

// Ended returns whether or not the end of the program has been walked.
func (w *Walker) Ended() bool {
	return w.ended
}

// Handle processes one notification.  While a class body is open, the
// notification is recorded in the class instead of being generated.
func (w *Walker) Handle(cmd sem.Command) error {
	if w.ended {
		return errors.New("%v notification after the end of the program", cmd.Kind)
	}

	w.src.Line = cmd.Line

	if w.class != nil && cmd.Kind != sem.CmdEndClass {
		return w.record(cmd)
	}

	return w.dispatch(cmd)
}

// dispatch generates the code of one notification.
func (w *Walker) dispatch(cmd sem.Command) error {
	w.src.Line = cmd.Line

	switch cmd.Kind {
	case sem.CmdInt:
		return w.walkInt(cmd)
	case sem.CmdReal:
		return w.walkReal(cmd)
	case sem.CmdName:
		return w.walkName(cmd)
	case sem.CmdElement:
		return w.walkElement(cmd)
	case sem.CmdMember:
		return w.walkMember(cmd)
	case sem.CmdArithmetic:
		return w.walkArithmetic(cmd)
	case sem.CmdCall:
		return w.walkCall(cmd)
	case sem.CmdCallMethod:
		return w.walkCallMethod(cmd)
	case sem.CmdDeclareVariable:
		return w.walkDeclareVariable(cmd)
	case sem.CmdDeclareArray:
		return w.walkDeclareArray(cmd)
	case sem.CmdAssign:
		return w.walkAssign(cmd)
	case sem.CmdAssignElement:
		return w.walkAssignElement(cmd)
	case sem.CmdAssignMember:
		return w.walkAssignMember(cmd)
	case sem.CmdPrint:
		return w.walkPrint(cmd)
	case sem.CmdScan:
		return w.walkScan(cmd)
	case sem.CmdBeginCondition:
		if w.gen.ConditionOpen() {
			return errors.New("condition begun at line %d before the previous one was compared", w.src.Line)
		}

		w.gen.OpenCondition()
		return nil
	case sem.CmdCompare:
		return w.walkCompare(cmd)
	case sem.CmdEndIf:
		return w.gen.EndControl(generate.If)
	case sem.CmdEndWhile:
		return w.gen.EndControl(generate.While)
	case sem.CmdReturn:
		return w.walkReturn(cmd)
	case sem.CmdDeclareFunction:
		return w.walkDeclareFunction(cmd)
	case sem.CmdEndFunction:
		return w.walkEndFunction(cmd)
	case sem.CmdBeginClass:
		return w.walkBeginClass(cmd)
	case sem.CmdEndClass:
		return w.walkEndClass(cmd)
	case sem.CmdDeclareInstance:
		return w.walkDeclareInstance(cmd)
	case sem.CmdEndProgram:
		return w.walkEndProgram(cmd)
	}

	return errors.New("unknown notification kind %v", cmd.Kind)
}

// -----------------------------------------------------------------------------

// push pushes an operand onto the operand stack.
func (w *Walker) push(op sem.Operand) {
	w.stack = append(w.stack, op)
}

// pop pops an operand off the operand stack.
func (w *Walker) pop() (sem.Operand, error) {
	if len(w.stack) == 0 {
		return nil, errors.New("operand stack underflow at line %d", w.src.Line)
	}

	op := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return op, nil
}

// popN pops n operands off the operand stack in the order they were pushed.
func (w *Walker) popN(n int) ([]sem.Operand, error) {
	if n < 0 {
		return nil, errors.New("negative operand count %d at line %d", n, w.src.Line)
	}

	ops := make([]sem.Operand, n)
	for i := n - 1; i >= 0; i-- {
		op, err := w.pop()
		if err != nil {
			return nil, err
		}

		ops[i] = op
	}

	return ops, nil
}

// popPair pops the operands of a binary construct: right then left.
func (w *Walker) popPair() (sem.Operand, sem.Operand, error) {
	right, err := w.pop()
	if err != nil {
		return nil, nil, err
	}

	left, err := w.pop()
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

// scalarType checks that a declared type is one which can be stored.
func (w *Walker) scalarType(dt typing.DataType, what, name string) error {
	if dt != typing.Int && dt != typing.Real {
		return w.src.Raise(report.TypeMismatch, "%s %s must be %s or %s, got %s", what, name, typing.Int, typing.Real, dt)
	}

	return nil
}

package walk

import (
	"mkc/sem"
	"mkc/typing"
)

// The methods below are the construct notifications.  Each one is a shorthand
// for handling the equivalent command.

// Int pushes an integer literal.
func (w *Walker) Int(line int, text string) error {
	return w.Handle(sem.Command{Kind: sem.CmdInt, Line: line, Text: text})
}

// Real pushes a real literal.
func (w *Walker) Real(line int, text string) error {
	return w.Handle(sem.Command{Kind: sem.CmdReal, Line: line, Text: text})
}

// Name pushes the binding of a variable.
func (w *Walker) Name(line int, name string) error {
	return w.Handle(sem.Command{Kind: sem.CmdName, Line: line, Name: name})
}

// Element pops an index and pushes the element of an array at that index.
func (w *Walker) Element(line int, array string) error {
	return w.Handle(sem.Command{Kind: sem.CmdElement, Line: line, Name: array})
}

// Member pushes the field of an instance.
func (w *Walker) Member(line int, inst, field string) error {
	return w.Handle(sem.Command{Kind: sem.CmdMember, Line: line, Target: inst, Name: field})
}

// Arithmetic pops two operands and pushes the result of an operator.
func (w *Walker) Arithmetic(line int, op typing.ArithOp) error {
	return w.Handle(sem.Command{Kind: sem.CmdArithmetic, Line: line, Text: op.String()})
}

// Call pops argc arguments and pushes the result of calling a function.
func (w *Walker) Call(line int, name string, argc int) error {
	return w.Handle(sem.Command{Kind: sem.CmdCall, Line: line, Name: name, Count: argc})
}

// CallMethod pops argc arguments and pushes the result of calling a method of
// an instance.
func (w *Walker) CallMethod(line int, inst, method string, argc int) error {
	return w.Handle(sem.Command{Kind: sem.CmdCallMethod, Line: line, Target: inst, Name: method, Count: argc})
}

// -----------------------------------------------------------------------------

// DeclareVariable declares a variable, popping its initializer if it has one.
func (w *Walker) DeclareVariable(line int, name string, hasInit bool) error {
	return w.Handle(sem.Command{Kind: sem.CmdDeclareVariable, Line: line, Name: name, HasInit: hasInit})
}

// DeclareArray pops count initial elements and declares an array.  A length
// of zero means the length is the number of elements.
func (w *Walker) DeclareArray(line int, dt typing.DataType, name string, length, count int) error {
	return w.Handle(sem.Command{Kind: sem.CmdDeclareArray, Line: line, Type: dt, Name: name, Length: length, Count: count})
}

// Assign pops a value and assigns it to a variable.
func (w *Walker) Assign(line int, name string) error {
	return w.Handle(sem.Command{Kind: sem.CmdAssign, Line: line, Name: name})
}

// AssignElement pops a value and an index and assigns the value to the
// element of an array.
func (w *Walker) AssignElement(line int, array string) error {
	return w.Handle(sem.Command{Kind: sem.CmdAssignElement, Line: line, Name: array})
}

// AssignMember pops a value and assigns it to the field of an instance.
func (w *Walker) AssignMember(line int, inst, field string) error {
	return w.Handle(sem.Command{Kind: sem.CmdAssignMember, Line: line, Target: inst, Name: field})
}

// Print pops a value and prints it.
func (w *Walker) Print(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdPrint, Line: line})
}

// Scan reads a value of a type into a variable.
func (w *Walker) Scan(line int, dt typing.DataType, name string) error {
	return w.Handle(sem.Command{Kind: sem.CmdScan, Line: line, Type: dt, Name: name})
}

// BeginCondition marks the start of the condition of an `if` or a `while`.
func (w *Walker) BeginCondition(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdBeginCondition, Line: line})
}

// Compare pops two operands and enters the body of a control construct if the
// comparison holds.
func (w *Walker) Compare(line int, kind typing.CompareKind) error {
	return w.Handle(sem.Command{Kind: sem.CmdCompare, Line: line, Text: kind.String()})
}

// EndIf closes the body of an `if`.
func (w *Walker) EndIf(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdEndIf, Line: line})
}

// EndWhile closes the body of a `while`.
func (w *Walker) EndWhile(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdEndWhile, Line: line})
}

// Return pops a value and returns it from the current function.
func (w *Walker) Return(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdReturn, Line: line})
}

// -----------------------------------------------------------------------------

// DeclareFunction opens the body of a function, or of a method inside a class
// body.
func (w *Walker) DeclareFunction(line int, ret typing.DataType, name string, params []sem.Param) error {
	return w.Handle(sem.Command{Kind: sem.CmdDeclareFunction, Line: line, Type: ret, Name: name, Params: params})
}

// EndFunction closes the body of a function or a method.
func (w *Walker) EndFunction(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdEndFunction, Line: line})
}

// BeginClass opens the body of a class.
func (w *Walker) BeginClass(line int, name string) error {
	return w.Handle(sem.Command{Kind: sem.CmdBeginClass, Line: line, Name: name})
}

// EndClass closes the body of a class.
func (w *Walker) EndClass(line int) error {
	return w.Handle(sem.Command{Kind: sem.CmdEndClass, Line: line})
}

// DeclareInstance declares an instance of a class.
func (w *Walker) DeclareInstance(line int, class, name string) error {
	return w.Handle(sem.Command{Kind: sem.CmdDeclareInstance, Line: line, Target: class, Name: name})
}

// EndProgram ends the program and returns the generated program text.
func (w *Walker) EndProgram(line int) (string, error) {
	if err := w.Handle(sem.Command{Kind: sem.CmdEndProgram, Line: line}); err != nil {
		return "", err
	}

	return w.program, nil
}

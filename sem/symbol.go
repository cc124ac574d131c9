package sem

import (
	"mkc/typing"
)

// Param is a named, typed function parameter.
type Param struct {
	Name string
	Type typing.DataType
}

// Method is the signature of a function or a method.  It is immutable once
// declared.
type Method struct {
	// The name of the function or method.
	Name string

	// The declared return type.
	ReturnType typing.DataType

	// The declared parameter types in order.
	Params []typing.DataType
}

// NewMethod creates a signature from a list of parameters.
func NewMethod(name string, returnType typing.DataType, params []Param) *Method {
	paramTypes := make([]typing.DataType, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}

	return &Method{Name: name, ReturnType: returnType, Params: paramTypes}
}

// -----------------------------------------------------------------------------

// ClassID is a handle into the class registry of a symbol table.
type ClassID int

// NoClass is the owner of bindings which do not belong to any class.
const NoClass ClassID = -1

// Class is a declared class.  Its fields, methods, and recorded commands grow
// while the class body is walked and are frozen once the class is closed.
type Class struct {
	// The handle of the class in its registry.
	ID ClassID

	// The name of the class.
	Name string

	// The field templates of the class organized by name.  Field templates
	// carry no instance: they are bound to one when an instance is declared.
	Fields map[string]*Global

	// The method signatures of the class organized by name.
	Methods map[string]*Method

	// Commands is the recorded body of the class: field initializers and
	// method bodies in declaration order.
	Commands []Command

	// Indicates whether or not the class body has been closed.
	frozen bool
}

func newClass(id ClassID, name string) *Class {
	return &Class{
		ID:      id,
		Name:    name,
		Fields:  make(map[string]*Global),
		Methods: make(map[string]*Method),
	}
}

// Record appends a command to the class body.  It reports false if the class
// has already been closed.
func (c *Class) Record(cmd Command) bool {
	if c.frozen {
		return false
	}

	c.Commands = append(c.Commands, cmd)
	return true
}

// Freeze closes the class body.
func (c *Class) Freeze() {
	c.frozen = true
}

// Frozen returns whether or not the class body has been closed.
func (c *Class) Frozen() bool {
	return c.frozen
}

// -----------------------------------------------------------------------------

// Instance is a named binding of a class.  The class is shared between all of
// its instances; each instance owns its own field storage.
type Instance struct {
	// The name of the instance.
	Name string

	// The handle of the instance's class.
	Class ClassID

	// The field bindings of the instance organized by name.  This is
	// populated as the class body is replayed.
	Fields map[string]*Global
}

package sem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mkc/typing"
)

// Operand is a value threaded between generation steps.  The set of operands
// is closed: Literal, Global (including array elements), Local, and Register.
type Operand interface {
	// DataType returns the logical type of the operand's value.
	DataType() typing.DataType

	// ObjectType returns how the operand must be addressed.
	ObjectType() typing.ObjectType
}

// Binding is a named storage location: a global or a local.
type Binding interface {
	Operand

	// BindingName returns the source name of the binding.
	BindingName() string

	// Storage returns the LLVM identifier of the binding's storage.
	Storage() string
}

// -----------------------------------------------------------------------------

// Literal is an immediate value.  It has no storage location.
type Literal struct {
	// The type of the literal: Int or Real.
	Type typing.DataType

	// The LLVM spelling of the value.
	Text string
}

func (l *Literal) DataType() typing.DataType     { return l.Type }
func (l *Literal) ObjectType() typing.ObjectType { return typing.Constant }

// NewIntLiteral parses the text of an integer literal.
func NewIntLiteral(text string) (*Literal, error) {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed integer literal %q", text)
	}

	return IntLiteral(v), nil
}

// IntLiteral returns an integer literal with the given value.
func IntLiteral(v int64) *Literal {
	return &Literal{Type: typing.Int, Text: strconv.FormatInt(v, 10)}
}

// NewRealLiteral parses the text of a real literal.
func NewRealLiteral(text string) (*Literal, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("malformed real literal %q", text)
	}

	return RealLiteral(v), nil
}

// RealLiteral returns a real literal with the given value.  LLVM requires a
// decimal point in every floating point constant.
func RealLiteral(v float64) *Literal {
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}

	return &Literal{Type: typing.Real, Text: text}
}

// -----------------------------------------------------------------------------

// Global is a program-level binding: a global variable, an array, an array
// element, or a field of a class instance.  Globals are never mutated in place:
// a change of storage type produces a copy with a new version.
type Global struct {
	// The source name of the global.
	Name string

	// The logical type of the value (the element type for arrays).
	Type typing.DataType

	// The version of the storage cell.  Each version has its own cell.
	Version int

	// Object is Variable, Array, or ArrayElement.
	Object typing.ObjectType

	// The declared length of an array.
	Length int

	// The class owning the field or NoClass for program globals.
	Owner ClassID

	// The instance owning the field's storage.  Empty for program globals and
	// for class-level field templates.
	Instance string

	// The index of an array element.
	Index Operand
}

func (g *Global) DataType() typing.DataType     { return g.Type }
func (g *Global) ObjectType() typing.ObjectType { return g.Object }
func (g *Global) BindingName() string           { return g.Name }

// NewGlobal creates a new program-level scalar global at version zero.
func NewGlobal(name string, dt typing.DataType) *Global {
	return &Global{Name: name, Type: dt, Object: typing.Variable, Owner: NoClass}
}

// NewArray creates a new program-level array.
func NewArray(name string, dt typing.DataType, length int) *Global {
	return &Global{Name: name, Type: dt, Object: typing.Array, Length: length, Owner: NoClass}
}

// qualifiedName returns the name mangled with the owning instance.
func (g *Global) qualifiedName() string {
	if g.Instance != "" {
		return g.Instance + "." + g.Name
	}

	return g.Name
}

// Storage returns the LLVM identifier of the global's storage cell.  All
// elements of an array share the array's storage.
func (g *Global) Storage() string {
	if g.Object == typing.Variable {
		return fmt.Sprintf("@var_%s.%d", g.qualifiedName(), g.Version)
	}

	return "@arr_" + g.qualifiedName()
}

// WithVersion returns a copy of the global bound to a new storage cell.
func (g *Global) WithVersion(version int, dt typing.DataType) *Global {
	ng := *g
	ng.Version = version
	ng.Type = dt
	return &ng
}

// Element returns a reference to an element of the array.
func (g *Global) Element(index Operand) *Global {
	ng := *g
	ng.Object = typing.ArrayElement
	ng.Index = index
	return &ng
}

// ForInstance returns a copy of a field template bound to an instance.
func (g *Global) ForInstance(instance string) *Global {
	ng := *g
	ng.Instance = instance
	return &ng
}

// -----------------------------------------------------------------------------

// Local is a binding scoped to the active function body.
type Local struct {
	// The source name of the local.
	Name string

	// The logical type of the value.
	Type typing.DataType

	// The version of the stack slot.
	Version int
}

func (l *Local) DataType() typing.DataType     { return l.Type }
func (l *Local) ObjectType() typing.ObjectType { return typing.Variable }
func (l *Local) BindingName() string           { return l.Name }

// Storage returns the LLVM identifier of the local's stack slot.
func (l *Local) Storage() string {
	return fmt.Sprintf("%%var_%s.%d", l.Name, l.Version)
}

// WithVersion returns a copy of the local bound to a new stack slot.
func (l *Local) WithVersion(version int, dt typing.DataType) *Local {
	return &Local{Name: l.Name, Type: dt, Version: version}
}

// -----------------------------------------------------------------------------

// Register is an anonymous numbered stack slot holding an intermediate value.
type Register struct {
	// The number of the `alloca` producing the slot.
	Number int

	// The logical type of the value.
	Type typing.DataType
}

func (r *Register) DataType() typing.DataType     { return r.Type }
func (r *Register) ObjectType() typing.ObjectType { return typing.Variable }

// Storage returns the LLVM identifier of the slot.
func (r *Register) Storage() string {
	return "%" + strconv.Itoa(r.Number)
}

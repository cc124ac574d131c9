package typing

import (
	"strings"

	"github.com/llir/llvm/ir/types"
)

// DataType is the logical type of an MK value.
type DataType int

// Enumeration of the data types.  None denotes a type which has not been
// resolved yet: it is stored as an Int.  Char is declared for forward
// compatibility but is never lowered.
const (
	None DataType = iota
	Int
	Real
	Char
)

var dataTypeNames = [...]string{
	None: "NONE",
	Int:  "INT",
	Real: "REAL",
	Char: "CHAR",
}

func (dt DataType) String() string {
	return dataTypeNames[dt]
}

// ParseDataType converts the lowercase or uppercase name of a data type into
// its data type.
func ParseDataType(name string) (DataType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, true
	case "int":
		return Int, true
	case "real":
		return Real, true
	case "char":
		return Char, true
	}

	return None, false
}

// Storage returns the data type used to store a value of this type.
func (dt DataType) Storage() DataType {
	if dt == None {
		return Int
	}

	return dt
}

// Lowered returns whether or not code can be generated for this data type.
func (dt DataType) Lowered() bool {
	return dt != Char
}

// LLType converts the data type to its LLVM type.
func (dt DataType) LLType() types.Type {
	switch dt {
	case None, Int:
		return types.I32
	case Real:
		return types.Double
	default:
		return types.I8
	}
}

// LLName returns the LLVM spelling of the data type: eg. `i32`.
func (dt DataType) LLName() string {
	return dt.LLType().String()
}

// LLPointer returns the LLVM spelling of a pointer to the data type.
func (dt DataType) LLPointer() string {
	return types.NewPointer(dt.LLType()).String()
}

// LLArray returns the LLVM spelling of an array of length elements of the data
// type: eg. `[3 x i32]`.
func (dt DataType) LLArray(length int) string {
	return types.NewArray(uint64(length), dt.LLType()).String()
}

// ZeroValue returns the LLVM spelling of the zero value of the data type.
func (dt DataType) ZeroValue() string {
	if dt == Real {
		return "0.0"
	}

	return "0"
}

// -----------------------------------------------------------------------------

// ObjectType classifies how an operand must be addressed.
type ObjectType int

// Enumeration of the object types.
const (
	Variable ObjectType = iota
	Constant
	Array
	ArrayElement
	Function
)

var objectTypeNames = [...]string{
	Variable:     "VARIABLE",
	Constant:     "CONSTANT",
	Array:        "ARRAY",
	ArrayElement: "ARRAY_ELEMENT",
	Function:     "FUNCTION",
}

func (ot ObjectType) String() string {
	return objectTypeNames[ot]
}

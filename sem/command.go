package sem

import (
	"fmt"

	"mkc/typing"
)

// CommandKind identifies a construct notification.
type CommandKind int

// Enumeration of the construct notifications.
const (
	// Values and expressions.
	CmdInt CommandKind = iota
	CmdReal
	CmdName
	CmdElement
	CmdMember
	CmdArithmetic
	CmdCall
	CmdCallMethod

	// Statements.
	CmdDeclareVariable
	CmdDeclareArray
	CmdAssign
	CmdAssignElement
	CmdAssignMember
	CmdPrint
	CmdScan
	CmdBeginCondition
	CmdCompare
	CmdEndIf
	CmdEndWhile
	CmdReturn

	// Declarations.
	CmdDeclareFunction
	CmdEndFunction
	CmdBeginClass
	CmdEndClass
	CmdDeclareInstance

	CmdEndProgram
)

var commandKindNames = [...]string{
	CmdInt:             "int",
	CmdReal:            "real",
	CmdName:            "name",
	CmdElement:         "element",
	CmdMember:          "member",
	CmdArithmetic:      "arith",
	CmdCall:            "call",
	CmdCallMethod:      "call-method",
	CmdDeclareVariable: "declare-variable",
	CmdDeclareArray:    "declare-array",
	CmdAssign:          "assign",
	CmdAssignElement:   "assign-element",
	CmdAssignMember:    "assign-member",
	CmdPrint:           "print",
	CmdScan:            "scan",
	CmdBeginCondition:  "begin-condition",
	CmdCompare:         "compare",
	CmdEndIf:           "end-if",
	CmdEndWhile:        "end-while",
	CmdReturn:          "return",
	CmdDeclareFunction: "declare-function",
	CmdEndFunction:     "end-function",
	CmdBeginClass:      "begin-class",
	CmdEndClass:        "end-class",
	CmdDeclareInstance: "declare-instance",
	CmdEndProgram:      "end-program",
}

func (k CommandKind) String() string {
	if int(k) < len(commandKindNames) {
		return commandKindNames[k]
	}

	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// ParseCommandKind converts the name of a notification into its kind.
func ParseCommandKind(name string) (CommandKind, bool) {
	for k, kname := range commandKindNames {
		if kname == name {
			return CommandKind(k), true
		}
	}

	return 0, false
}

// Command is one construct notification with everything it captured from the
// source: literal text, identifiers, types, and counts.  Commands are plain
// values so that a class body can be recorded once and replayed for every
// instance.
type Command struct {
	// The kind of notification.
	Kind CommandKind

	// The source line of the construct.
	Line int

	// The primary identifier: a variable, array, function, method, class, or
	// field name.
	Name string

	// The secondary identifier: the instance of a member access or a method
	// call, or the class of an instance declaration.
	Target string

	// The literal text or operator token.
	Text string

	// The declared type of a function, array, parameter, or scan target.
	Type typing.DataType

	// The number of call arguments or array initializer elements.
	Count int

	// The declared length of an array: zero if the length is inferred.
	Length int

	// Indicates whether or not a variable declaration has an initializer.
	HasInit bool

	// The parameters of a function declaration.
	Params []Param
}

package typing

import (
	"fmt"

	"github.com/llir/llvm/ir/enum"
)

// ArithOp is a binary arithmetic operator.
type ArithOp int

// Enumeration of the arithmetic operators.
const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

// ParseArithOp converts an operator token or its name into an ArithOp.
func ParseArithOp(s string) (ArithOp, bool) {
	switch s {
	case "+", "add":
		return Add, true
	case "-", "sub":
		return Sub, true
	case "*", "mul":
		return Mul, true
	case "/", "div":
		return Div, true
	}

	return Add, false
}

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	default:
		return "div"
	}
}

// Opcode returns the LLVM instruction for the operator applied to operands of
// the given storage type.  Integer division has no opcode: division is always
// performed on reals.
func (op ArithOp) Opcode(dt DataType) (string, error) {
	if dt.Storage() == Real {
		return "f" + op.String(), nil
	}

	if op == Div {
		return "", fmt.Errorf("no integer opcode for division")
	}

	return op.String() + " nsw", nil
}

// -----------------------------------------------------------------------------

// CompareKind is a comparison operator.
type CompareKind int

// Enumeration of the comparison operators.
const (
	EQ CompareKind = iota
	NE
	LT
	LE
	GT
	GE
)

// ParseCompareKind converts a comparison token or its name into a CompareKind.
func ParseCompareKind(s string) (CompareKind, bool) {
	switch s {
	case "==", "eq":
		return EQ, true
	case "!=", "ne":
		return NE, true
	case "<", "lt":
		return LT, true
	case "<=", "le":
		return LE, true
	case ">", "gt":
		return GT, true
	case ">=", "ge":
		return GE, true
	}

	return EQ, false
}

func (ck CompareKind) String() string {
	return [...]string{"eq", "ne", "lt", "le", "gt", "ge"}[ck]
}

// IPred returns the signed integer predicate for the comparison.
func (ck CompareKind) IPred() enum.IPred {
	switch ck {
	case EQ:
		return enum.IPredEQ
	case NE:
		return enum.IPredNE
	case LT:
		return enum.IPredSLT
	case LE:
		return enum.IPredSLE
	case GT:
		return enum.IPredSGT
	default:
		return enum.IPredSGE
	}
}

// FPred returns the floating point predicate for the comparison.  Inequality
// is unordered so that it holds when either operand is NaN.
func (ck CompareKind) FPred() enum.FPred {
	switch ck {
	case EQ:
		return enum.FPredOEQ
	case NE:
		return enum.FPredUNE
	case LT:
		return enum.FPredOLT
	case LE:
		return enum.FPredOLE
	case GT:
		return enum.FPredOGT
	default:
		return enum.FPredOGE
	}
}

// Instruction returns the compare instruction and predicate used to compare
// two values of the given storage type: eg. `icmp slt`.
func (ck CompareKind) Instruction(dt DataType) string {
	if dt.Storage() == Real {
		return "fcmp " + ck.FPred().String()
	}

	return "icmp " + ck.IPred().String()
}

package report

import (
	"errors"
	"fmt"

	"tlog.app/go/loc"
)

// ErrorKind classifies a compilation error.  Every kind is fatal: the first
// error reported stops the compilation run.
type ErrorKind int

// Enumeration of the different kinds of compilation errors.
const (
	DuplicateDeclaration ErrorKind = iota
	UnknownIdentifier
	ArityMismatch
	TypeMismatch
	MissingReturn
	ScopeViolation
	ArrayOverflow
	ReservedNameViolation
)

var errorKindNames = [...]string{
	DuplicateDeclaration:  "DuplicateDeclaration",
	UnknownIdentifier:     "UnknownIdentifier",
	ArityMismatch:         "ArityMismatch",
	TypeMismatch:          "TypeMismatch",
	MissingReturn:         "MissingReturn",
	ScopeViolation:        "ScopeViolation",
	ArrayOverflow:         "ArrayOverflow",
	ReservedNameViolation: "ReservedNameViolation",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// -----------------------------------------------------------------------------

// CompileError is a compilation error: erroneous input.  It carries the line of
// the construct that triggered it and the source file the construct came from.
type CompileError struct {
	// The kind of error.
	Kind ErrorKind

	// The 1-indexed source line of the offending construct.
	Line int

	// The human-readable error message.
	Message string

	// The source file the construct stream was produced from.
	File string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("Compilation error at line %d - %s in %s", ce.Line, ce.Message, ce.File)
}

// Source tracks the position of the construct currently being processed.  The
// walker updates the line before every notification; anything that raises
// errors during that notification shares the same Source.
type Source struct {
	// The path to the source file.
	File string

	// The line of the construct being processed.
	Line int
}

// Raise creates a new compile error positioned at the current line.
func (s *Source) Raise(kind ErrorKind, msg string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:    kind,
		Line:    s.Line,
		Message: fmt.Sprintf(msg, args...),
		File:    s.File,
	}
}

// KindOf returns the kind of the compile error wrapped in err if there is one.
func KindOf(err error) (ErrorKind, bool) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr.Kind, true
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// InternalError is an internal compiler error: the compiler did something it
// was not supposed to.  It is raised by panicking and is never caused by input.
type InternalError struct {
	Message string

	// Where is the location in the compiler the error was raised from.
	Where loc.PC
}

func (ie *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error at %v: %s", ie.Where, ie.Message)
}

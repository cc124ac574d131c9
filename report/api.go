package report

import (
	"errors"
	"fmt"

	"tlog.app/go/loc"
)

// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportCompileError reports a compilation error: ie. erroneous input code.
func ReportCompileError(cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayCompileError(rep.out, cerr)
	}
}

// ReportError reports any error returned from a compilation.  Compile errors
// are displayed with their position; all other errors are displayed as
// standard errors.
func ReportError(err error) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		ReportCompileError(cerr)
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayStdError(rep.out, err)
	}
}

// ReportWarning reports a non-fatal problem such as an ignored option.
func ReportWarning(tag, msg string, args ...interface{}) {
	if rep.logLevel >= LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayWarning(rep.out, tag, fmt.Sprintf(msg, args...))
	}
}

// ReportInfo reports an informational message.  It is only displayed at the
// verbose log level.
func ReportInfo(tag, msg string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfo(rep.out, tag, fmt.Sprintf(msg, args...))
	}
}

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug in the compiler: they are not intended to
// ever happen.  The error is always displayed and then raised as a panic.
func ReportICE(message string, args ...interface{}) {
	ice := &InternalError{Message: fmt.Sprintf(message, args...), Where: loc.Caller(1)}

	rep.m.Lock()
	displayICE(rep.out, ice.Error())
	rep.m.Unlock()

	panic(ice)
}

// ReportCompilationFinished displays the concluding message of compilation.
func ReportCompilationFinished(outputPath string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompilationFinished(rep.out, !rep.isErr, outputPath)
	}
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	return rep.isErr
}

// -----------------------------------------------------------------------------

// PrintErrorMessage displays a tagged error regardless of the log level.  It is
// used for errors which occur before the reporter is initialized.
func PrintErrorMessage(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true
	displayTaggedError(rep.out, tag, err)
}

// PrintInfoMessage displays a tagged message regardless of the log level.
func PrintInfoMessage(tag, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayInfo(rep.out, tag, msg)
}

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayICE displays an internal compiler error message.
func displayICE(out io.Writer, message string) {
	fmt.Fprint(out, ErrorStyleBG.Sprint("Internal Compiler Error"), " ")
	fmt.Fprintln(out, ErrorColorFG.Sprint(message))
	fmt.Fprint(out, "This error was not supposed to happen: it is a bug in the compiler.\n\n")
}

// displayStdError displays a standard Go error.
func displayStdError(out io.Writer, err error) {
	fmt.Fprint(out, ErrorStyleBG.Sprint("Error"), " ")
	fmt.Fprintln(out, ErrorColorFG.Sprint(err.Error()))
}

// displayTaggedError displays a standard Go error under a tag.
func displayTaggedError(out io.Writer, tag string, err error) {
	fmt.Fprint(out, ErrorStyleBG.Sprint(tag), " ")
	fmt.Fprintln(out, ErrorColorFG.Sprint(err.Error()))
}

// displayWarning displays a tagged warning message.
func displayWarning(out io.Writer, tag, msg string) {
	fmt.Fprint(out, WarnStyleBG.Sprint(tag), " ")
	fmt.Fprintln(out, WarnColorFG.Sprint(msg))
}

// displayInfo displays a tagged informational message.
func displayInfo(out io.Writer, tag, msg string) {
	fmt.Fprint(out, InfoStyleBG.Sprint(tag), " ")
	fmt.Fprintln(out, InfoColorFG.Sprint(msg))
}

var errorKindBanners = map[ErrorKind]string{
	DuplicateDeclaration:  "Definition",
	UnknownIdentifier:     "Name",
	ArityMismatch:         "Argument",
	TypeMismatch:          "Type",
	MissingReturn:         "Return",
	ScopeViolation:        "Scope",
	ArrayOverflow:         "Array",
	ReservedNameViolation: "Name",
}

// displayCompileError displays a compilation error along with the offending
// source line if the source file can be read.
func displayCompileError(out io.Writer, cerr *CompileError) {
	fmt.Fprint(out, ErrorStyleBG.Sprint(errorKindBanners[cerr.Kind]+" Error"), " ")
	fmt.Fprintln(out, ErrorColorFG.Sprint(cerr.Error()))

	if line, ok := readSourceLine(cerr.File, cerr.Line); ok {
		lineNumber := fmt.Sprintf("%d", cerr.Line)
		fmt.Fprint(out, InfoColorFG.Sprint(lineNumber), " | ")
		fmt.Fprintln(out, strings.TrimSpace(strings.ReplaceAll(line, "\t", "    ")))
	}

	fmt.Fprintln(out)
}

// readSourceLine reads the given 1-indexed line of a source file.  The source
// file is optional: construct streams may outlive the text they came from.
func readSourceLine(path string, lineNumber int) (string, bool) {
	if path == "" || lineNumber < 1 {
		return "", false
	}

	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for ln := 1; sc.Scan(); ln++ {
		if ln == lineNumber {
			return sc.Text(), true
		}
	}

	return "", false
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(out io.Writer, success bool, outputPath string) {
	if success {
		fmt.Fprint(out, SuccessColorFG.Sprint("All done! "))
		if outputPath != "" {
			fmt.Fprintf(out, "(wrote %s)", outputPath)
		}
	} else {
		fmt.Fprint(out, ErrorColorFG.Sprint("Oh no! "))
		fmt.Fprint(out, "(compilation failed)")
	}

	fmt.Fprintln(out)
}

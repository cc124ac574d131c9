package generate

import (
	"fmt"

	"mkc/common"
	"mkc/config"
	"mkc/output"
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// Generator lowers MK constructs into LLVM IR text.  It holds no state beyond
// a single compilation run: two generators fed the same constructs produce
// byte-identical programs.
type Generator struct {
	// src positions every error raised by the generator.
	src *report.Source

	// rt is the runtime symbol mapping used by I/O.
	rt *config.Runtime

	// out is the output multiplexer the program is assembled in.
	out *output.Builder

	// entry is the context of the program entry point.  It lives for the
	// whole run so that top-level statements interleaved with function
	// declarations keep numbering from where they left off.
	entry *funcContext

	// fn is the context of the function currently being generated.
	fn *funcContext

	// labelCounter is used to number control constructs.  It is shared by all
	// functions so that labels are unique within the program.
	labelCounter int

	// finished indicates whether or not the program has been materialized.
	finished bool
}

// funcContext is the state of one function being generated.
type funcContext struct {
	// sig is the signature of the function.  It is nil for the entry point.
	sig *sem.Method

	// section is the output section the function's body is written to.
	section output.Section

	// nextReg is the number of the next unnamed value.  Parameters take the
	// first numbers followed by the entry block.
	nextReg int

	// pending is the stack of open control constructs.
	pending []int

	// openCompare is the compare label opened by OpenCondition and not yet
	// consumed by Compare.  It is -1 if there is none.
	openCompare int

	// temps is the set of named synthetic slots already allocated in the
	// function.
	temps map[string]struct{}

	// slots marks the top of the function body where named stack slots are
	// allocated.  Slots allocated there dominate every block of the function.
	slots *output.Mark

	// detached indicates that the last instruction was a terminator and no
	// label has been placed since: the next instruction opens an implicit,
	// numbered block.
	detached bool
}

func newFuncContext(sig *sem.Method, section output.Section, nparams int) *funcContext {
	return &funcContext{
		sig:         sig,
		section:     section,
		nextReg:     nparams + 1,
		openCompare: -1,
		temps:       make(map[string]struct{}),
	}
}

// New creates a new generator for one compilation run.
func New(src *report.Source, rt *config.Runtime) *Generator {
	g := &Generator{
		src:   src,
		rt:    rt,
		out:   output.NewBuilder(rt.Prologue()),
		entry: newFuncContext(nil, output.EntryBody, 0),
	}

	g.fn = g.entry
	g.entry.slots = g.out.Mark()
	g.out.AppendToEntryDecl(fmt.Sprintf("define i32 @%s() nounwind {\n", common.EntryPointName))
	return g
}

// InFunction returns whether or not a function or method body is being
// generated.
func (g *Generator) InFunction() bool {
	return g.fn != g.entry
}

// ReturnType returns the declared return type of the function being
// generated.
func (g *Generator) ReturnType() typing.DataType {
	if g.fn.sig == nil {
		return typing.Int
	}

	return g.fn.sig.ReturnType
}

// Finish closes the entry point and materializes the program text.  The
// generator cannot be used after it is finished.
func (g *Generator) Finish() (string, error) {
	if g.finished {
		report.ReportICE("program materialized twice")
	}

	if g.InFunction() {
		return "", g.src.Raise(report.ScopeViolation, "program ends inside the body of %s", g.fn.sig.Name)
	}

	if len(g.entry.pending) > 0 || g.ConditionOpen() {
		return "", g.src.Raise(report.ScopeViolation, "program ends inside an unclosed control construct")
	}

	g.emit("ret i32 0")
	g.out.Append("}\n")
	g.finished = true

	return g.out.String(), nil
}

// -----------------------------------------------------------------------------

// openBlock reserves the number of the implicit block that follows a
// terminator if no label was placed after it.
func (fc *funcContext) openBlock() {
	if fc.detached {
		fc.nextReg++
		fc.detached = false
	}
}

// reg allocates the next unnamed value number in the current function.
func (g *Generator) reg() int {
	g.fn.openBlock()

	n := g.fn.nextReg
	g.fn.nextReg++
	return n
}

// emit appends an instruction to the current function.
func (g *Generator) emit(format string, args ...interface{}) {
	g.fn.openBlock()
	g.out.Append("  " + fmt.Sprintf(format, args...) + "\n")
}

// terminate appends a terminator instruction to the current function.
func (g *Generator) terminate(format string, args ...interface{}) {
	g.emit(format, args...)
	g.fn.detached = true
}

// hoist allocates a named stack slot at the top of the current function.
func (g *Generator) hoist(name string, dt typing.DataType) {
	g.out.Insert(g.fn.slots, fmt.Sprintf("  %s = alloca %s\n", name, dt.LLName()))
}

// label places a named label in the current function.
func (g *Generator) label(name string, id int) {
	g.out.Append(fmt.Sprintf("\n%s%d:\n", name, id))
	g.fn.detached = false
}

// newLabelID returns a fresh control construct number.
func (g *Generator) newLabelID() int {
	id := g.labelCounter
	g.labelCounter++
	return id
}

// alloca allocates a fresh anonymous stack slot.
func (g *Generator) alloca(dt typing.DataType) *sem.Register {
	n := g.reg()
	g.emit("%%%d = alloca %s", n, dt.LLName())
	return &sem.Register{Number: n, Type: dt.Storage()}
}

// load loads the value of a stack slot and returns the loaded value.
func (g *Generator) load(r *sem.Register) string {
	n := g.reg()
	t := r.Type.LLName()
	g.emit("%%%d = load %s, %s* %s", n, t, t, r.Storage())
	return fmt.Sprintf("%%%d", n)
}

// checkLowered checks that code can be generated for an operand.
func (g *Generator) checkLowered(op sem.Operand) error {
	if !op.DataType().Lowered() {
		return g.src.Raise(report.TypeMismatch, "values of type %s are not supported", op.DataType())
	}

	if op.ObjectType() == typing.Array {
		return g.src.Raise(report.TypeMismatch, "array %s cannot be used as a value", op.(sem.Binding).BindingName())
	}

	return nil
}

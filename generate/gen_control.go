package generate

import (
	"fmt"

	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

// ControlKind is the kind of a control construct closed by EndControl.
type ControlKind int

// Enumeration of the control constructs.
const (
	If ControlKind = iota
	While
)

func (ck ControlKind) String() string {
	if ck == If {
		return "if"
	}

	return "while"
}

// OpenCondition opens the compare block of a new control construct.  It is
// called when a condition is entered so that every instruction evaluating the
// condition is placed inside the compare block: loops then re-evaluate the
// whole condition on each iteration.
func (g *Generator) OpenCondition() {
	if g.fn.openCompare != -1 {
		report.ReportICE("condition opened twice")
	}

	id := g.newLabelID()
	g.terminate("br label %%compare%d", id)
	g.label("compare", id)

	g.fn.openCompare = id
}

// ConditionOpen returns whether a compare block has been opened and not yet
// consumed by a comparison.
func (g *Generator) ConditionOpen() bool {
	return g.fn.openCompare != -1
}

// Compare compares two operands and branches into the body of the innermost
// control construct if the comparison holds.  Both operands are widened to
// reals if either of them is real.
func (g *Generator) Compare(left sem.Operand, kind typing.CompareKind, right sem.Operand) error {
	id := g.fn.openCompare
	if id == -1 {
		g.OpenCondition()
		id = g.fn.openCompare
	}
	g.fn.openCompare = -1

	l, r, err := g.widen(left, right, false)
	if err != nil {
		return err
	}

	lval := g.load(l)
	rval := g.load(r)

	cond := g.reg()
	g.emit("%%%d = %s %s %s, %s", cond, kind.Instruction(l.Type), l.Type.LLName(), lval, rval)
	g.terminate("br i1 %%%d, label %%then%d, label %%end%d", cond, id, id)
	g.label("then", id)

	g.fn.pending = append(g.fn.pending, id)
	return nil
}

// EndControl closes the innermost control construct.  An `if` continues past
// its end label; a `while` branches back to its compare block.
func (g *Generator) EndControl(kind ControlKind) error {
	if len(g.fn.pending) == 0 {
		return g.src.Raise(report.ScopeViolation, "closing %s without an open condition", kind)
	}

	id := g.fn.pending[len(g.fn.pending)-1]
	g.fn.pending = g.fn.pending[:len(g.fn.pending)-1]

	var target string
	if kind == If {
		target = fmt.Sprintf("end%d", id)
	} else {
		target = fmt.Sprintf("compare%d", id)
	}

	g.terminate("br label %%%s", target)
	g.label("end", id)

	return nil
}

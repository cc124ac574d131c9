package walk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkc/config"
	"mkc/report"
	"mkc/sem"
	"mkc/typing"
)

func newTestWalker() *Walker {
	return New("prog.mk", config.DefaultRuntime())
}

func requireKind(t *testing.T, err error, kind report.ErrorKind) {
	t.Helper()

	require.Error(t, err)
	k, ok := report.KindOf(err)
	require.True(t, ok, "not a compile error: %v", err)
	assert.Equal(t, kind, k, "%v", err)
}

// functionBody returns the text of the named function in a program.
func functionBody(program, llName string) string {
	start := strings.Index(program, "define ")
	for start != -1 {
		end := strings.Index(program[start:], "\n}\n")
		body := program[start : start+end]
		if strings.Contains(strings.SplitN(body, "\n", 2)[0], llName+"(") {
			return body
		}

		next := strings.Index(program[start+1:], "define ")
		if next == -1 {
			break
		}
		start += next + 1
	}

	return ""
}

func TestGlobalsAndPrint(t *testing.T) {
	w := newTestWalker()

	require.NoError(t, w.Int(1, "3"))
	require.NoError(t, w.Int(1, "2"))
	require.NoError(t, w.Arithmetic(1, typing.Div))
	require.NoError(t, w.DeclareVariable(1, "x", true))
	require.NoError(t, w.Name(2, "x"))
	require.NoError(t, w.Print(2))

	out, err := w.EndProgram(3)
	require.NoError(t, err)
	assert.Equal(t, out, w.Program())

	assert.Contains(t, out, "@var_x.0 = global double 0.0\n")
	assert.Contains(t, out, "fdiv double")
	assert.Contains(t, out, "@sysvar_printreal")
}

func TestLocalRedeclaration(t *testing.T) {
	w := newTestWalker()

	require.NoError(t, w.DeclareFunction(1, typing.Int, "f", []sem.Param{{Name: "a", Type: typing.Int}}))
	require.NoError(t, w.DeclareVariable(2, "y", false))
	requireKind(t, w.DeclareVariable(3, "y", false), report.DuplicateDeclaration)

	w = newTestWalker()
	require.NoError(t, w.DeclareFunction(1, typing.Int, "f", []sem.Param{{Name: "a", Type: typing.Int}}))
	require.NoError(t, w.DeclareVariable(2, "y", false))
	requireKind(t, w.DeclareVariable(2, "a", false), report.DuplicateDeclaration)

	w = newTestWalker()
	require.NoError(t, w.DeclareFunction(1, typing.Int, "f", nil))
	require.NoError(t, w.DeclareVariable(2, "y", false))
	require.NoError(t, w.Name(3, "y"))
	require.NoError(t, w.Return(3))
	require.NoError(t, w.EndFunction(4))

	require.NoError(t, w.DeclareFunction(5, typing.Int, "g", nil))
	require.NoError(t, w.DeclareVariable(6, "y", false))
	require.NoError(t, w.Name(7, "y"))
	require.NoError(t, w.Return(7))
	require.NoError(t, w.EndFunction(8))

	require.NoError(t, w.DeclareVariable(9, "y", false))

	_, err := w.EndProgram(10)
	require.NoError(t, err)
}

func TestLocalsDoNotLeak(t *testing.T) {
	w := newTestWalker()

	require.NoError(t, w.DeclareFunction(1, typing.Int, "f", nil))
	require.NoError(t, w.DeclareVariable(2, "y", false))
	require.NoError(t, w.Name(3, "y"))
	require.NoError(t, w.Return(3))
	require.NoError(t, w.EndFunction(4))

	requireKind(t, w.Name(5, "y"), report.UnknownIdentifier)
}

func TestMissingReturn(t *testing.T) {
	w := newTestWalker()

	require.NoError(t, w.DeclareFunction(1, typing.Int, "f", nil))
	require.NoError(t, w.Int(2, "1"))
	require.NoError(t, w.Print(2))

	err := w.EndFunction(3)
	requireKind(t, err, report.MissingReturn)
	assert.Equal(t, "Compilation error at line 3 - function f has no return statement in prog.mk", err.Error())
}

func TestCallArity(t *testing.T) {
	w := newTestWalker()

	params := []sem.Param{{Name: "a", Type: typing.Int}, {Name: "b", Type: typing.Int}}
	require.NoError(t, w.DeclareFunction(1, typing.Int, "add", params))
	require.NoError(t, w.Name(2, "a"))
	require.NoError(t, w.Name(2, "b"))
	require.NoError(t, w.Arithmetic(2, typing.Add))
	require.NoError(t, w.Return(2))
	require.NoError(t, w.EndFunction(3))

	require.NoError(t, w.Int(4, "1"))
	err := w.Call(4, "add", 1)
	requireKind(t, err, report.ArityMismatch)
	assert.Contains(t, err.Error(), "expects 2 arguments, got 1")
}

func TestCallArgumentOrder(t *testing.T) {
	w := newTestWalker()

	params := []sem.Param{{Name: "a", Type: typing.Int}, {Name: "b", Type: typing.Real}}
	require.NoError(t, w.DeclareFunction(1, typing.Real, "f", params))
	require.NoError(t, w.Name(2, "b"))
	require.NoError(t, w.Return(2))
	require.NoError(t, w.EndFunction(3))

	require.NoError(t, w.Int(4, "1"))
	require.NoError(t, w.Real(4, "2.5"))
	require.NoError(t, w.Call(4, "f", 2))
	require.NoError(t, w.Print(4))

	out, err := w.EndProgram(5)
	require.NoError(t, err)
	assert.Contains(t, out, "call double @func_f(i32 %2, double %4)")
}

func TestReservedNames(t *testing.T) {
	w := newTestWalker()
	requireKind(t, w.DeclareFunction(1, typing.Int, "main", nil), report.ReservedNameViolation)
	requireKind(t, w.Call(2, "main", 0), report.ReservedNameViolation)
	requireKind(t, w.BeginClass(3, "Main"), report.ReservedNameViolation)

	require.NoError(t, w.BeginClass(4, "C"))
	require.NoError(t, w.EndClass(5))
	requireKind(t, w.DeclareInstance(6, "C", "main"), report.ReservedNameViolation)
}

func TestArrays(t *testing.T) {
	w := newTestWalker()

	for _, v := range []string{"1", "2", "3", "4"} {
		require.NoError(t, w.Int(1, v))
	}
	requireKind(t, w.DeclareArray(1, typing.Int, "a", 3, 4), report.ArrayOverflow)

	w = newTestWalker()
	require.NoError(t, w.Int(1, "1"))
	require.NoError(t, w.Int(1, "2"))
	require.NoError(t, w.DeclareArray(1, typing.Int, "a", 0, 2))

	b, err := w.table.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, 2, b.(*sem.Global).Length)

	require.NoError(t, w.Int(2, "1"))
	require.NoError(t, w.Int(2, "9"))
	require.NoError(t, w.AssignElement(2, "a"))
	require.NoError(t, w.Int(3, "0"))
	require.NoError(t, w.Element(3, "a"))
	require.NoError(t, w.Print(3))

	out, err := w.EndProgram(4)
	require.NoError(t, err)
	assert.Contains(t, out, "@arr_a = global [2 x i32] zeroinitializer\n")
	assert.Contains(t, out, "store i32 9, i32* ")
}

func TestScopeViolations(t *testing.T) {
	w := newTestWalker()
	require.NoError(t, w.Int(1, "1"))
	requireKind(t, w.Return(1), report.ScopeViolation)
	requireKind(t, w.EndIf(2), report.ScopeViolation)
	requireKind(t, w.EndFunction(3), report.ScopeViolation)
	requireKind(t, w.EndClass(4), report.ScopeViolation)

	w = newTestWalker()
	require.NoError(t, w.DeclareFunction(1, typing.Int, "f", nil))
	requireKind(t, w.BeginClass(2, "C"), report.ScopeViolation)
	requireKind(t, w.DeclareFunction(3, typing.Int, "g", nil), report.ScopeViolation)
	requireKind(t, w.DeclareArray(4, typing.Int, "a", 2, 0), report.ScopeViolation)

	w = newTestWalker()
	require.NoError(t, w.BeginClass(1, "C"))
	requireKind(t, w.DeclareInstance(2, "C", "c"), report.ScopeViolation)
	requireKind(t, w.BeginClass(3, "D"), report.ScopeViolation)
	requireKind(t, w.BeginCondition(4), report.ScopeViolation)
	requireKind(t, w.Return(5), report.ScopeViolation)
	_, err := w.EndProgram(6)
	requireKind(t, err, report.ScopeViolation)
}

func TestInstanceOfUnknownClass(t *testing.T) {
	w := newTestWalker()
	requireKind(t, w.DeclareInstance(1, "Nope", "n"), report.UnknownIdentifier)

	require.NoError(t, w.BeginClass(2, "C"))
	require.NoError(t, w.EndClass(3))
	require.NoError(t, w.DeclareInstance(4, "C", "c"))
	requireKind(t, w.DeclareInstance(5, "C", "c"), report.DuplicateDeclaration)
	requireKind(t, w.DeclareVariable(6, "C", false), report.DuplicateDeclaration)
}

// walkCounter declares a counter class and two of its instances.
func walkCounter(t *testing.T, w *Walker) {
	require.NoError(t, w.BeginClass(1, "Counter"))
	require.NoError(t, w.Int(2, "0"))
	require.NoError(t, w.DeclareVariable(2, "v", true))

	require.NoError(t, w.DeclareFunction(3, typing.Int, "inc", nil))
	require.NoError(t, w.Name(4, "v"))
	require.NoError(t, w.Int(4, "1"))
	require.NoError(t, w.Arithmetic(4, typing.Add))
	require.NoError(t, w.Assign(4, "v"))
	require.NoError(t, w.Name(5, "v"))
	require.NoError(t, w.Return(5))
	require.NoError(t, w.EndFunction(6))

	require.NoError(t, w.DeclareFunction(7, typing.Int, "twice", nil))
	require.NoError(t, w.Call(8, "inc", 0))
	require.NoError(t, w.Call(8, "inc", 0))
	require.NoError(t, w.Arithmetic(8, typing.Add))
	require.NoError(t, w.Return(8))
	require.NoError(t, w.EndFunction(9))
	require.NoError(t, w.EndClass(10))

	require.NoError(t, w.DeclareInstance(11, "Counter", "a"))
	require.NoError(t, w.DeclareInstance(12, "Counter", "b"))
}

func TestInstancesHaveIndependentFields(t *testing.T) {
	w := newTestWalker()
	walkCounter(t, w)

	require.NoError(t, w.Int(13, "5"))
	require.NoError(t, w.AssignMember(13, "a", "v"))
	require.NoError(t, w.CallMethod(14, "b", "inc", 0))
	require.NoError(t, w.Print(14))
	require.NoError(t, w.Member(15, "a", "v"))
	require.NoError(t, w.Print(15))

	out, err := w.EndProgram(16)
	require.NoError(t, err)

	assert.Contains(t, out, "@var_a.v.0 = global i32 0\n")
	assert.Contains(t, out, "@var_b.v.0 = global i32 0\n")
	assert.Contains(t, out, "store i32 5, i32* @var_a.v.0\n")

	incA := functionBody(out, "@method_a.inc")
	incB := functionBody(out, "@method_b.inc")
	require.NotEmpty(t, incA)
	require.NotEmpty(t, incB)
	assert.Contains(t, incA, "@var_a.v.0")
	assert.NotContains(t, incA, "@var_b.v.0")
	assert.Contains(t, incB, "@var_b.v.0")
	assert.NotContains(t, incB, "@var_a.v.0")

	twiceA := functionBody(out, "@method_a.twice")
	assert.Equal(t, 2, strings.Count(twiceA, "call i32 @method_a.inc()"))
	assert.Equal(t, 1, strings.Count(twiceA, "%var_ret.a.inc.0 = alloca i32"))
}

func TestUnknownMembers(t *testing.T) {
	w := newTestWalker()
	walkCounter(t, w)

	requireKind(t, w.Member(13, "a", "nope"), report.UnknownIdentifier)
	requireKind(t, w.CallMethod(14, "a", "nope", 0), report.UnknownIdentifier)
	requireKind(t, w.Member(15, "c", "v"), report.UnknownIdentifier)
	requireKind(t, w.Name(16, "v"), report.UnknownIdentifier)
}

func TestClassMethodMissingReturn(t *testing.T) {
	w := newTestWalker()

	require.NoError(t, w.BeginClass(1, "C"))
	require.NoError(t, w.DeclareFunction(2, typing.Int, "m", nil))
	requireKind(t, w.EndClass(3), report.ScopeViolation)
	requireKind(t, w.EndFunction(3), report.MissingReturn)
}

func TestWhileLoop(t *testing.T) {
	w := newTestWalker()

	require.NoError(t, w.Int(1, "0"))
	require.NoError(t, w.DeclareVariable(1, "i", true))
	require.NoError(t, w.BeginCondition(2))
	require.NoError(t, w.Name(2, "i"))
	require.NoError(t, w.Int(2, "10"))
	require.NoError(t, w.Compare(2, typing.LT))
	require.NoError(t, w.Name(3, "i"))
	require.NoError(t, w.Int(3, "1"))
	require.NoError(t, w.Arithmetic(3, typing.Add))
	require.NoError(t, w.Assign(3, "i"))
	require.NoError(t, w.EndWhile(4))

	out, err := w.EndProgram(5)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "br label %compare0\n"))
	assert.Equal(t, 1, strings.Count(out, "\nend0:\n"))
}

func TestMalformedStream(t *testing.T) {
	w := newTestWalker()

	err := w.Print(1)
	require.Error(t, err)
	_, ok := report.KindOf(err)
	assert.False(t, ok)

	requireKind(t, w.Int(2, "99999999999"), report.TypeMismatch)

	_, err = w.EndProgram(3)
	require.NoError(t, err)
	assert.Error(t, w.Int(4, "1"))

	w = newTestWalker()
	require.NoError(t, w.BeginCondition(1))
	err = w.BeginCondition(1)
	require.Error(t, err)
	_, ok = report.KindOf(err)
	assert.False(t, ok)

	_, err = w.EndProgram(2)
	requireKind(t, err, report.ScopeViolation)
}

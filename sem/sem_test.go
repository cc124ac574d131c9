package sem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkc/report"
	"mkc/typing"
)

func newTestTable() *Table {
	return NewTable(&report.Source{File: "test.mk", Line: 1})
}

func requireKind(t *testing.T, err error, kind report.ErrorKind) {
	t.Helper()

	require.Error(t, err)
	got, ok := report.KindOf(err)
	require.True(t, ok, "expected a compile error, got %v", err)
	assert.Equal(t, kind, got, "error: %v", err)
}

func TestLiterals(t *testing.T) {
	l, err := NewIntLiteral("42")
	require.NoError(t, err)
	assert.Equal(t, "42", l.Text)
	assert.Equal(t, typing.Int, l.DataType())
	assert.Equal(t, typing.Constant, l.ObjectType())

	r, err := NewRealLiteral("3")
	require.NoError(t, err)
	assert.Equal(t, "3.0", r.Text)

	r, err = NewRealLiteral("2.50")
	require.NoError(t, err)
	assert.Equal(t, "2.5", r.Text)

	_, err = NewIntLiteral("4x")
	assert.Error(t, err)
}

func TestStorageNames(t *testing.T) {
	g := NewGlobal("x", typing.Int)
	assert.Equal(t, "@var_x.0", g.Storage())
	assert.Equal(t, "@var_x.1", g.WithVersion(1, typing.Real).Storage())

	f := g.ForInstance("a")
	assert.Equal(t, "@var_a.x.0", f.Storage())

	arr := NewArray("xs", typing.Real, 3)
	assert.Equal(t, "@arr_xs", arr.Storage())
	el := arr.Element(IntLiteral(1))
	assert.Equal(t, typing.ArrayElement, el.ObjectType())
	assert.Equal(t, "@arr_xs", el.Storage())
	assert.Equal(t, typing.Array, arr.ObjectType())

	l := &Local{Name: "y", Type: typing.Int}
	assert.Equal(t, "%var_y.0", l.Storage())
	assert.Equal(t, "%7", (&Register{Number: 7}).Storage())
}

func TestLocalScopes(t *testing.T) {
	tab := newTestTable()

	requireKind(t, tab.DeclareLocal(&Local{Name: "a"}), report.ScopeViolation)

	tab.EnterFunction()
	require.NoError(t, tab.DeclareLocal(&Local{Name: "a", Type: typing.Int}))
	requireKind(t, tab.DeclareLocal(&Local{Name: "a", Type: typing.Real}), report.DuplicateDeclaration)
	tab.LeaveFunction()

	tab.EnterFunction()
	assert.NoError(t, tab.DeclareLocal(&Local{Name: "a", Type: typing.Real}))
}

func TestLookupOrder(t *testing.T) {
	tab := newTestTable()
	require.NoError(t, tab.DeclareGlobal(NewGlobal("x", typing.Real)))

	b, err := tab.Lookup("x")
	require.NoError(t, err)
	assert.IsType(t, &Global{}, b)

	tab.EnterFunction()
	require.NoError(t, tab.DeclareLocal(&Local{Name: "x", Type: typing.Int}))
	b, err = tab.Lookup("x")
	require.NoError(t, err)
	assert.IsType(t, &Local{}, b)
	tab.LeaveFunction()

	_, err = tab.Lookup("nope")
	requireKind(t, err, report.UnknownIdentifier)
}

func TestRebind(t *testing.T) {
	tab := newTestTable()
	g := NewGlobal("x", typing.Int)
	require.NoError(t, tab.DeclareGlobal(g))

	tab.Rebind(g.WithVersion(1, typing.Real))
	b, err := tab.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, "@var_x.1", b.Storage())
	assert.Equal(t, typing.Real, b.DataType())
}

func TestFunctions(t *testing.T) {
	tab := newTestTable()

	m := NewMethod("f", typing.Int, []Param{{Name: "a", Type: typing.Int}, {Name: "b", Type: typing.Real}})
	assert.Equal(t, []typing.DataType{typing.Int, typing.Real}, m.Params)
	require.NoError(t, tab.DeclareFunction(m))
	requireKind(t, tab.DeclareFunction(m), report.DuplicateDeclaration)
	requireKind(t, tab.DeclareFunction(NewMethod("main", typing.Int, nil)), report.ReservedNameViolation)

	_, err := tab.LookupFunction("Main")
	requireKind(t, err, report.ReservedNameViolation)
	_, err = tab.LookupFunction("g")
	requireKind(t, err, report.UnknownIdentifier)
}

func TestClassesAndInstances(t *testing.T) {
	tab := newTestTable()

	c, err := tab.DeclareClass("Point")
	require.NoError(t, err)
	require.NoError(t, tab.DeclareClassField(c, NewGlobal("x", typing.Int)))
	requireKind(t, tab.DeclareClassField(c, NewGlobal("x", typing.Int)), report.DuplicateDeclaration)
	assert.Equal(t, c.ID, c.Fields["x"].Owner)

	_, err = tab.DeclareInstance("p", "Point")
	requireKind(t, err, report.ScopeViolation)

	c.Freeze()
	assert.False(t, c.Record(Command{Kind: CmdPrint}))

	p, err := tab.DeclareInstance("p", "Point")
	require.NoError(t, err)
	assert.Equal(t, c, tab.Class(p.Class))

	_, err = tab.DeclareInstance("p", "Point")
	requireKind(t, err, report.DuplicateDeclaration)
	_, err = tab.DeclareInstance("Point", "Point")
	requireKind(t, err, report.DuplicateDeclaration)
	_, err = tab.DeclareInstance("main", "Point")
	requireKind(t, err, report.ReservedNameViolation)
	_, err = tab.DeclareInstance("q", "Line")
	requireKind(t, err, report.UnknownIdentifier)
	_, err = tab.DeclareClass("Main")
	requireKind(t, err, report.ReservedNameViolation)

	requireKind(t, tab.DeclareGlobal(NewGlobal("Point", typing.Int)), report.DuplicateDeclaration)
}

func TestInstanceFieldLookup(t *testing.T) {
	tab := newTestTable()
	c, err := tab.DeclareClass("Counter")
	require.NoError(t, err)
	c.Freeze()

	a, err := tab.DeclareInstance("a", "Counter")
	require.NoError(t, err)

	requireKind(t, tab.DeclareField(NewGlobal("n", typing.Int)), report.ScopeViolation)

	tab.SetInstance(a)
	require.NoError(t, tab.DeclareField(NewGlobal("n", typing.Int).ForInstance("a")))
	b, err := tab.Lookup("n")
	require.NoError(t, err)
	assert.Equal(t, "@var_a.n.0", b.Storage())
	tab.SetInstance(nil)

	_, err = tab.Lookup("n")
	requireKind(t, err, report.UnknownIdentifier)
}

func TestCommandKinds(t *testing.T) {
	k, ok := ParseCommandKind("declare-instance")
	require.True(t, ok)
	assert.Equal(t, CmdDeclareInstance, k)
	assert.Equal(t, "end-while", CmdEndWhile.String())

	_, ok = ParseCommandKind("goto")
	assert.False(t, ok)
}

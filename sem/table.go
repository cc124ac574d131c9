package sem

import (
	"mkc/common"
	"mkc/report"
)

// Table holds every symbol of one compilation: program globals, the locals of
// the active function body, functions, classes, and instances.
type Table struct {
	// src positions every error raised by the table.
	src *report.Source

	// globals is the table of program-level globals and arrays.
	globals map[string]*Global

	// locals is the local set of the active function body.  It is nil when no
	// function body is active.
	locals map[string]*Local

	// functions is the table of declared function signatures.
	functions map[string]*Method

	// classes is the class registry indexed by ClassID.
	classes []*Class

	// classNames maps class names to their handles.
	classNames map[string]ClassID

	// instances is the table of declared instances.
	instances map[string]*Instance

	// current is the instance whose class body is being replayed.
	current *Instance
}

// NewTable creates a new empty symbol table.
func NewTable(src *report.Source) *Table {
	return &Table{
		src:        src,
		globals:    make(map[string]*Global),
		functions:  make(map[string]*Method),
		classNames: make(map[string]ClassID),
		instances:  make(map[string]*Instance),
	}
}

// -----------------------------------------------------------------------------

// checkProgramName checks that a new program-level name does not collide with
// a class, an instance, or a global.
func (t *Table) checkProgramName(name string) error {
	if _, ok := t.classNames[name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "name %s is already used by a class", name)
	}

	if _, ok := t.instances[name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "name %s is already used by an instance", name)
	}

	if _, ok := t.globals[name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "declaring already existing variable %s", name)
	}

	return nil
}

// DeclareGlobal declares a program-level global or array.
func (t *Table) DeclareGlobal(g *Global) error {
	if err := t.checkProgramName(g.Name); err != nil {
		return err
	}

	t.globals[g.Name] = g
	return nil
}

// DeclareField declares a field of the instance being replayed.
func (t *Table) DeclareField(g *Global) error {
	if t.current == nil {
		return t.src.Raise(report.ScopeViolation, "declaring field %s outside a class instance", g.Name)
	}

	if _, ok := t.current.Fields[g.Name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "declaring already existing field %s of %s", g.Name, t.current.Name)
	}

	t.current.Fields[g.Name] = g
	return nil
}

// EnterFunction creates a fresh local set for a function body.
func (t *Table) EnterFunction() {
	t.locals = make(map[string]*Local)
}

// LeaveFunction discards the local set of the active function body.
func (t *Table) LeaveFunction() {
	t.locals = nil
}

// InFunction returns whether or not a function body is active.
func (t *Table) InFunction() bool {
	return t.locals != nil
}

// DeclareLocal declares a local in the active function body.
func (t *Table) DeclareLocal(l *Local) error {
	if t.locals == nil {
		return t.src.Raise(report.ScopeViolation, "declaring local variable %s outside a function body", l.Name)
	}

	if _, ok := t.locals[l.Name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "declaring already existing variable %s in function body", l.Name)
	}

	t.locals[l.Name] = l
	return nil
}

// Lookup resolves a name: first against the locals of the active function
// body, then against the fields of the instance being replayed, and finally
// against the program globals.
func (t *Table) Lookup(name string) (Binding, error) {
	if l, ok := t.locals[name]; ok {
		return l, nil
	}

	if t.current != nil {
		if f, ok := t.current.Fields[name]; ok {
			return f, nil
		}
	}

	if g, ok := t.globals[name]; ok {
		return g, nil
	}

	return nil, t.src.Raise(report.UnknownIdentifier, "using non-existing variable %s", name)
}

// Rebind installs a new version of a binding in the scope that owns it.
func (t *Table) Rebind(b Binding) {
	switch v := b.(type) {
	case *Local:
		t.locals[v.Name] = v
	case *Global:
		if v.Instance != "" {
			t.instances[v.Instance].Fields[v.Name] = v
		} else {
			t.globals[v.Name] = v
		}
	}
}

// -----------------------------------------------------------------------------

// DeclareFunction declares a new function signature.
func (t *Table) DeclareFunction(m *Method) error {
	if common.IsReservedName(m.Name) {
		return t.src.Raise(report.ReservedNameViolation, "%s is reserved for the program entry point", m.Name)
	}

	if _, ok := t.functions[m.Name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "defining already existing function %s", m.Name)
	}

	t.functions[m.Name] = m
	return nil
}

// LookupFunction looks up the signature of a function to call.
func (t *Table) LookupFunction(name string) (*Method, error) {
	if common.IsReservedName(name) {
		return nil, t.src.Raise(report.ReservedNameViolation, "the program entry point %s cannot be called", name)
	}

	if m, ok := t.functions[name]; ok {
		return m, nil
	}

	return nil, t.src.Raise(report.UnknownIdentifier, "calling non-existing function %s", name)
}

// -----------------------------------------------------------------------------

// DeclareClass declares a new class and returns it open for recording.
func (t *Table) DeclareClass(name string) (*Class, error) {
	if common.IsReservedName(name) {
		return nil, t.src.Raise(report.ReservedNameViolation, "%s is reserved for the program entry point", name)
	}

	if err := t.checkProgramName(name); err != nil {
		return nil, err
	}

	c := newClass(ClassID(len(t.classes)), name)
	t.classes = append(t.classes, c)
	t.classNames[name] = c.ID
	return c, nil
}

// Class returns the class with the given handle.
func (t *Table) Class(id ClassID) *Class {
	return t.classes[id]
}

// LookupClass looks up a class by name.
func (t *Table) LookupClass(name string) (*Class, error) {
	if id, ok := t.classNames[name]; ok {
		return t.classes[id], nil
	}

	return nil, t.src.Raise(report.UnknownIdentifier, "using non-existing class %s", name)
}

// DeclareClassField adds a field template to an open class.
func (t *Table) DeclareClassField(c *Class, g *Global) error {
	if _, ok := c.Fields[g.Name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "declaring already existing field %s in class %s", g.Name, c.Name)
	}

	g.Owner = c.ID
	c.Fields[g.Name] = g
	return nil
}

// DeclareClassMethod adds a method signature to an open class.
func (t *Table) DeclareClassMethod(c *Class, m *Method) error {
	if common.IsReservedName(m.Name) {
		return t.src.Raise(report.ReservedNameViolation, "%s is reserved for the program entry point", m.Name)
	}

	if _, ok := c.Methods[m.Name]; ok {
		return t.src.Raise(report.DuplicateDeclaration, "defining already existing method %s in class %s", m.Name, c.Name)
	}

	c.Methods[m.Name] = m
	return nil
}

// -----------------------------------------------------------------------------

// DeclareInstance declares a new instance of a closed class.
func (t *Table) DeclareInstance(name, className string) (*Instance, error) {
	c, err := t.LookupClass(className)
	if err != nil {
		return nil, err
	}

	if !c.Frozen() {
		return nil, t.src.Raise(report.ScopeViolation, "instantiating class %s inside its own body", className)
	}

	if common.IsReservedName(name) {
		return nil, t.src.Raise(report.ReservedNameViolation, "%s is reserved for the program entry point", name)
	}

	if err := t.checkProgramName(name); err != nil {
		return nil, err
	}

	inst := &Instance{
		Name:   name,
		Class:  c.ID,
		Fields: make(map[string]*Global),
	}
	t.instances[name] = inst
	return inst, nil
}

// LookupInstance looks up an instance by name.
func (t *Table) LookupInstance(name string) (*Instance, error) {
	if inst, ok := t.instances[name]; ok {
		return inst, nil
	}

	return nil, t.src.Raise(report.UnknownIdentifier, "using non-existing instance %s", name)
}

// SetInstance sets the instance whose class body is being replayed.  Passing
// nil ends the replay.
func (t *Table) SetInstance(inst *Instance) {
	t.current = inst
}

// Instance returns the instance being replayed or nil.
func (t *Table) Instance() *Instance {
	return t.current
}

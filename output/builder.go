package output

import (
	"strings"

	"mkc/report"
)

// Section is one of the independently growing parts of the output program.
type Section int

// Enumeration of the output sections in the order they are materialized.
const (
	Header    Section = iota // global and per-instance storage declarations
	EntryDecl                // the entry point's `define` line
	EntryBody                // the body of the entry point
	Functions                // every other function and method body
	numSections
)

var sectionNames = [...]string{
	Header:    "header",
	EntryDecl: "entry-declaration",
	EntryBody: "entry-body",
	Functions: "functions",
}

func (s Section) String() string {
	return sectionNames[s]
}

// Mode is the state of a Builder: either Direct or Held.
type Mode interface {
	isMode()
}

// Direct is the mode in which appended text goes straight to a section.
type Direct struct {
	Section Section
}

// Held is the mode in which appended text is captured in a scratch buffer
// until it is released.  Resume is the section that becomes active again on
// release.
type Held struct {
	Resume Section
	buf    *strings.Builder
}

func (Direct) isMode() {}
func (Held) isMode()   {}

// -----------------------------------------------------------------------------

// Builder assembles the output program from its sections.  It allows a caller
// to hold the output, generate a run of instructions, and then decide what
// must be placed in front of them.
type Builder struct {
	// prologue is the text always placed before every section.
	prologue string

	// sections holds the accumulated text of each section.
	sections [numSections]strings.Builder

	// mode is the current routing of appended text.
	mode Mode
}

// NewBuilder creates a new builder appending directly to the entry body.
func NewBuilder(prologue string) *Builder {
	return &Builder{
		prologue: prologue,
		mode:     Direct{Section: EntryBody},
	}
}

// Mode returns the current mode of the builder.
func (b *Builder) Mode() Mode {
	return b.mode
}

// Switch makes s the section that receives appended text.  If the builder is
// held, s becomes active once the buffer is released.
func (b *Builder) Switch(s Section) {
	switch m := b.mode.(type) {
	case Direct:
		b.mode = Direct{Section: s}
	case Held:
		b.mode = Held{Resume: s, buf: m.buf}
	}
}

// Append appends text to the active section or to the held buffer.
func (b *Builder) Append(text string) {
	switch m := b.mode.(type) {
	case Direct:
		b.sections[m.Section].WriteString(text)
	case Held:
		m.buf.WriteString(text)
	}
}

// AppendToHeader appends text to the header section.  Header text is never
// captured by a held buffer: storage declarations belong to the header no
// matter what is being generated.
func (b *Builder) AppendToHeader(text string) {
	b.sections[Header].WriteString(text)
}

// AppendToEntryDecl appends text to the entry point declaration section.
func (b *Builder) AppendToEntryDecl(text string) {
	b.sections[EntryDecl].WriteString(text)
}

// Hold redirects all appended text into a fresh scratch buffer.
func (b *Builder) Hold() {
	switch m := b.mode.(type) {
	case Direct:
		b.mode = Held{Resume: m.Section, buf: &strings.Builder{}}
	case Held:
		report.ReportICE("output buffer held twice")
	}
}

// Release ends the hold and returns the captured text.  The caller is
// responsible for appending it again, possibly behind a computed prefix.
func (b *Builder) Release() string {
	switch m := b.mode.(type) {
	case Held:
		b.mode = Direct{Section: m.Resume}
		return m.buf.String()
	default:
		report.ReportICE("output buffer released without being held")
		return ""
	}
}

// Mark is a position in a section at which text can be inserted later.
type Mark struct {
	Section Section
	Pos     int
}

// Mark returns the current end of the active section.  The builder must not
// be held.
func (b *Builder) Mark() *Mark {
	m, ok := b.mode.(Direct)
	if !ok {
		report.ReportICE("output position marked while held")
	}

	return &Mark{Section: m.Section, Pos: b.sections[m.Section].Len()}
}

// Insert inserts text at a mark and advances the mark past it so that
// successive insertions keep their order.  Text is inserted regardless of the
// builder's mode.
func (b *Builder) Insert(m *Mark, text string) {
	sec := &b.sections[m.Section]
	if m.Pos > sec.Len() {
		report.ReportICE("insertion mark past the end of the %s section", m.Section)
	}

	prev := sec.String()
	sec.Reset()
	sec.WriteString(prev[:m.Pos])
	sec.WriteString(text)
	sec.WriteString(prev[m.Pos:])

	m.Pos += len(text)
}

// SectionText returns the text accumulated in a section so far.
func (b *Builder) SectionText(s Section) string {
	return b.sections[s].String()
}

// String materializes the program: the prologue followed by the header, the
// entry point declaration, the entry point body, and the other functions.
func (b *Builder) String() string {
	var sb strings.Builder

	sb.WriteString(b.prologue)
	for i := range b.sections {
		sb.WriteString(b.sections[i].String())
	}

	return sb.String()
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"tlog.app/go/errors"
)

// Runtime maps the runtime-support symbols referenced by generated code to
// their LLVM names.  The symbols are the C library I/O functions and the
// format strings passed to them.
type Runtime struct {
	PrintInt  string `toml:"printInt"`
	PrintReal string `toml:"printReal"`
	ScanInt   string `toml:"scanInt"`
	ScanReal  string `toml:"scanReal"`
	Printf    string `toml:"printf"`
	Scanf     string `toml:"scanf"`
}

// runtimeKeys is the set of keys allowed in the runtime table.
var runtimeKeys = map[string]struct{}{
	"printInt":  {},
	"printReal": {},
	"scanInt":   {},
	"scanReal":  {},
	"printf":    {},
	"scanf":     {},
}

// tomlConfigFile represents the configuration file as it is encoded in TOML.
type tomlConfigFile struct {
	Runtime *Runtime `toml:"runtime"`
}

// DefaultRuntime returns the default runtime symbol mapping.
func DefaultRuntime() *Runtime {
	return &Runtime{
		PrintInt:  "@sysvar_printint",
		PrintReal: "@sysvar_printreal",
		ScanInt:   "@sysvar_scanint",
		ScanReal:  "@sysvar_scanreal",
		Printf:    "@printf",
		Scanf:     "@scanf",
	}
}

// LoadRuntime loads a runtime mapping from a TOML configuration file.  Keys
// omitted from the file keep their default values.
func LoadRuntime(path string) (*Runtime, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	rt, err := ParseRuntime(buff)
	if err != nil {
		return nil, errors.Wrap(err, "config %s", path)
	}

	return rt, nil
}

// ParseRuntime parses the `[runtime]` table of a TOML document.  Any other
// top-level table and any key outside of the six runtime symbols is rejected.
func ParseRuntime(buff []byte) (*Runtime, error) {
	tree, err := toml.LoadBytes(buff)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	for _, key := range tree.Keys() {
		if key != "runtime" {
			return nil, errors.New("unknown table or key `%s` at %v", key, tree.GetPosition(key))
		}
	}

	if rtTree, ok := tree.Get("runtime").(*toml.Tree); ok {
		for _, key := range rtTree.Keys() {
			if _, ok := runtimeKeys[key]; !ok {
				return nil, errors.New("unknown runtime symbol `%s` at %v", key, rtTree.GetPosition(key))
			}
		}
	} else if tree.Has("runtime") {
		return nil, errors.New("`runtime` must be a table")
	}

	tcf := &tomlConfigFile{}
	if err := tree.Unmarshal(tcf); err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	rt := DefaultRuntime()
	if tcf.Runtime != nil {
		rt.merge(tcf.Runtime)
	}

	if err := rt.validate(); err != nil {
		return nil, err
	}

	return rt, nil
}

// merge overrides the symbols of rt with every symbol set in other.
func (rt *Runtime) merge(other *Runtime) {
	for _, pair := range []struct{ dst, src *string }{
		{&rt.PrintInt, &other.PrintInt},
		{&rt.PrintReal, &other.PrintReal},
		{&rt.ScanInt, &other.ScanInt},
		{&rt.ScanReal, &other.ScanReal},
		{&rt.Printf, &other.Printf},
		{&rt.Scanf, &other.Scanf},
	} {
		if *pair.src != "" {
			*pair.dst = *pair.src
		}
	}
}

// validate checks that every symbol is a global LLVM identifier.
func (rt *Runtime) validate() error {
	for _, sym := range []struct{ key, value string }{
		{"printInt", rt.PrintInt},
		{"printReal", rt.PrintReal},
		{"scanInt", rt.ScanInt},
		{"scanReal", rt.ScanReal},
		{"printf", rt.Printf},
		{"scanf", rt.Scanf},
	} {
		if len(sym.value) < 2 || !strings.HasPrefix(sym.value, "@") || strings.ContainsAny(sym.value, " \t\n,()") {
			return errors.New("runtime symbol `%s` must be a global identifier: got %q", sym.key, sym.value)
		}
	}

	return nil
}

// Prologue returns the declarations every generated program starts with: the
// I/O functions followed by their format strings.
func (rt *Runtime) Prologue() string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "declare i32 %s(i8*, ...)\n", rt.Printf)
	fmt.Fprintf(sb, "declare i32 %s(i8*, ...)\n", rt.Scanf)
	fmt.Fprintf(sb, "%s = constant [4 x i8] c\"%%d\\0A\\00\"\n", rt.PrintInt)
	fmt.Fprintf(sb, "%s = constant [4 x i8] c\"%%f\\0A\\00\"\n", rt.PrintReal)
	fmt.Fprintf(sb, "%s = constant [3 x i8] c\"%%d\\00\"\n", rt.ScanInt)
	fmt.Fprintf(sb, "%s = constant [4 x i8] c\"%%lf\\00\"\n", rt.ScanReal)
	sb.WriteString("\n")

	return sb.String()
}

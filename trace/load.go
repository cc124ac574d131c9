package trace

import (
	"os"

	"github.com/pelletier/go-toml"
	"tlog.app/go/errors"

	"mkc/sem"
	"mkc/typing"
)

// Trace is a recorded stream of construct notifications.
type Trace struct {
	// Source is the path of the source file the stream was produced from.
	Source string

	// Commands are the notifications in the order the constructs closed.
	Commands []sem.Command
}

// tomlTrace represents a trace file as it is encoded in TOML.
type tomlTrace struct {
	Source string      `toml:"source"`
	Exits  []*tomlExit `toml:"exit"`
}

// tomlExit represents a single notification as it is encoded in TOML.
type tomlExit struct {
	Line   int          `toml:"line"`
	Kind   string       `toml:"kind"`
	Name   string       `toml:"name,omitempty"`
	Target string       `toml:"target,omitempty"`
	Text   string       `toml:"text,omitempty"`
	Type   string       `toml:"type,omitempty"`
	Count  int          `toml:"count,omitempty"`
	Length int          `toml:"length,omitempty"`
	Init   bool         `toml:"init,omitempty"`
	Params []*tomlParam `toml:"params,omitempty"`
}

// tomlParam represents a function parameter as it is encoded in TOML.
type tomlParam struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// Load loads a trace file.
func Load(path string) (*Trace, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read trace")
	}

	tr, err := Parse(buff)
	if err != nil {
		return nil, errors.Wrap(err, "trace %s", path)
	}

	if tr.Source == "" {
		tr.Source = path
	}

	return tr, nil
}

// Parse parses the TOML encoding of a trace.
func Parse(buff []byte) (*Trace, error) {
	tt := &tomlTrace{}
	if err := toml.Unmarshal(buff, tt); err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	tr := &Trace{Source: tt.Source, Commands: make([]sem.Command, len(tt.Exits))}
	for i, te := range tt.Exits {
		cmd, err := convertExit(te)
		if err != nil {
			return nil, errors.Wrap(err, "exit no. %d", i+1)
		}

		tr.Commands[i] = cmd
	}

	return tr, nil
}

// convertExit converts a TOML notification into a command.
func convertExit(te *tomlExit) (sem.Command, error) {
	kind, ok := sem.ParseCommandKind(te.Kind)
	if !ok {
		return sem.Command{}, errors.New("unknown notification kind `%s`", te.Kind)
	}

	if te.Line < 0 {
		return sem.Command{}, errors.New("negative line number %d", te.Line)
	}

	if te.Count < 0 || te.Length < 0 {
		return sem.Command{}, errors.New("counts and lengths must not be negative")
	}

	dt, ok := typing.ParseDataType(te.Type)
	if !ok {
		return sem.Command{}, errors.New("unknown data type `%s`", te.Type)
	}

	cmd := sem.Command{
		Kind:    kind,
		Line:    te.Line,
		Name:    te.Name,
		Target:  te.Target,
		Text:    te.Text,
		Type:    dt,
		Count:   te.Count,
		Length:  te.Length,
		HasInit: te.Init,
	}

	for _, tp := range te.Params {
		pt, ok := typing.ParseDataType(tp.Type)
		if !ok || tp.Name == "" {
			return sem.Command{}, errors.New("malformed parameter `%s %s`", tp.Type, tp.Name)
		}

		cmd.Params = append(cmd.Params, sem.Param{Name: tp.Name, Type: pt})
	}

	return cmd, nil
}

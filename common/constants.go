package common

// MKVersion is the current compiler version as a string.
const MKVersion string = "0.3.0"

// TraceFileExt is the file extension for a recorded construct stream.
const TraceFileExt string = ".mkt"

// ConfigFileName is the name of the runtime configuration file looked up next
// to a trace when none is given explicitly.
const ConfigFileName string = "mkc.toml"

// EntryPointName is the name of the program entry point.  Code outside of any
// function body is emitted into it.
const EntryPointName string = "main"

// IsReservedName returns true if name is reserved for the entry point: both
// `main` and `Main` are rejected as user-chosen names.
func IsReservedName(name string) bool {
	return name == "main" || name == "Main"
}

// Package settings holds build metadata and the per-run parameters of the
// pilltag demo CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "pilltag"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// OutputMode selects how the CLI presents the tag.
type OutputMode int

const (
	// ModeInteractive runs the Bubble Tea program.
	ModeInteractive OutputMode = iota
	// ModeSnapshot prints one terminal rendering and exits.
	ModeSnapshot
	// ModeHTML prints the HTML fragment and exits.
	ModeHTML
)

func (m OutputMode) String() string {
	switch m {
	case ModeSnapshot:
		return "snapshot"
	case ModeHTML:
		return "html"
	default:
		return "interactive"
	}
}

// Run holds the settings of a single CLI execution.
type Run struct {
	MinLogLevel int8
	LogFormat   string
	ConfigPath  string
	Watch       bool
	Mode        OutputMode
	Width       int
	NoColor     bool
}

// NewCliParams returns the defaults used before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		LogFormat:   "console",
		Mode:        ModeInteractive,
	}
}

// Interactive reports whether the run should start a Bubble Tea program.
func (r *Run) Interactive() bool {
	return r != nil && r.Mode == ModeInteractive
}

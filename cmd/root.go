package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/pilltag/internal/defaults"
	"github.com/oakwood-commons/pilltag/pkg/logger"
	"github.com/oakwood-commons/pilltag/pkg/pilltag"
	"github.com/oakwood-commons/pilltag/pkg/settings"
)

const defaultFallbackTermWidth = 80

var (
	errWatchWithoutConfig = errors.New("--watch requires --config")
	errMissingRunSettings = errors.New("run settings missing from context")
)

// rootFlags holds the raw flag values of one command instance.
type rootFlags struct {
	editable     bool
	removable    bool
	autoComplete string
	configFile   string
	watch        bool
	snapshot     bool
	html         bool
	noColor      bool
	logLevel     string
	logFormat    string
	width        int
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [label]",
		Short: "Render an interactive pill tag in the terminal",
		Long: "pilltag shows a single tag. Editable tags are edited inline with ghost-text\n" +
			"completion from --auto-complete (Tab accepts, Enter confirms, Esc cancels).\n" +
			"Removable tags show a × control. Events are logged below the tag.",
		Example: "  pilltag Go --removable\n" +
			"  pilltag --editable --auto-complete '[\"Apple\",\"Apricot\"]'\n" +
			"  pilltag Go --config tag.yaml --watch\n" +
			"  pilltag Go --html",
		Version:       settings.VersionInformation.BuildVersion,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, f, args)
		},
	}
	bindRootFlags(cmd.Flags(), f)
	return cmd
}

func bindRootFlags(fs *pflag.FlagSet, f *rootFlags) {
	fs.BoolVar(&f.editable, "editable", false, "allow editing the label inline")
	fs.BoolVar(&f.removable, "removable", false, "show the remove control")
	fs.StringVar(&f.autoComplete, "auto-complete", "", `suggestions as a JSON string array, e.g. '["Go","Rust"]'`)
	fs.StringVarP(&f.configFile, "config", "c", "", "path to a YAML or TOML config file (tag, styles, keys)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "reload --config when it changes")
	fs.BoolVar(&f.snapshot, "snapshot", false, "print one rendering and exit")
	fs.BoolVar(&f.html, "html", false, "print the tag as an HTML fragment and exit")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colour output")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	fs.StringVar(&f.logFormat, "log-format", logger.FormatConsole, "log format: console|json")
	fs.IntVar(&f.width, "width", 0, "output width in columns (default: terminal width)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, f *rootFlags, args []string) error {
	run, err := runSettings(cmd, f)
	if err != nil {
		return err
	}

	lgr := logger.Setup(logger.Options{Level: run.MinLogLevel, Format: run.LogFormat, Output: cmd.ErrOrStderr()})
	log := lgr.WithName(settings.CliBinaryName).WithValues("mode", run.Mode.String())
	ctx := settings.IntoContext(logger.WithLogger(commandContext(cmd), &log), run)

	cfg, err := loadMergedConfig(run.ConfigPath)
	if err != nil {
		return err
	}

	tag, err := buildTag(cmd.Flags(), f, cfg, args, run, log)
	if err != nil {
		return err
	}

	if run.Interactive() {
		return runInteractive(ctx, cmd, tag, cfg)
	}

	out := cmd.OutOrStdout()
	switch run.Mode {
	case settings.ModeHTML:
		fragment, err := pilltag.RenderHTML(tag)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, fragment)
		return err
	case settings.ModeSnapshot:
		return renderSnapshot(out, tag, cfg, log, run.Width)
	}
	return fmt.Errorf("unknown output mode %q", run.Mode)
}

// runSettings turns flags into run parameters.
func runSettings(cmd *cobra.Command, f *rootFlags) (*settings.Run, error) {
	level, err := logger.ParseLevel(f.logLevel)
	if err != nil {
		return nil, err
	}
	if f.watch && f.configFile == "" {
		return nil, errWatchWithoutConfig
	}

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.LogFormat = f.logFormat
	run.ConfigPath = f.configFile
	run.Watch = f.watch
	run.NoColor = f.noColor || os.Getenv("NO_COLOR") != ""
	run.Width = f.width
	switch {
	case f.html:
		run.Mode = settings.ModeHTML
	case f.snapshot || !isTerminal(cmd.OutOrStdout()):
		run.Mode = settings.ModeSnapshot
	}
	if run.Width <= 0 {
		run.Width, _ = detectTerminalSize()
	}
	if run.NoColor {
		color.NoColor = true
	}
	return run, nil
}

// buildTag creates the tag from the merged config, then applies explicit flags.
func buildTag(fs *pflag.FlagSet, f *rootFlags, cfg defaults.File, args []string, run *settings.Run, log logr.Logger) (*pilltag.Model, error) {
	label := cfg.Tag.Value
	if len(args) > 0 {
		label = args[0]
	}

	editable := cfg.Tag.Editable != nil && *cfg.Tag.Editable
	if fs.Changed("editable") {
		editable = f.editable
	}
	removable := cfg.Tag.Removable != nil && *cfg.Tag.Removable
	if fs.Changed("removable") {
		removable = f.removable
	}
	suggestions := cfg.Tag.AutoComplete
	if fs.Changed("auto-complete") {
		parsed, err := pilltag.ParseSuggestions(f.autoComplete)
		if err != nil {
			return nil, fmt.Errorf("--auto-complete: %w", err)
		}
		suggestions = parsed
	}

	styles := pilltag.StylesFromConfig(cfg.Styles, pilltag.DefaultStyles())
	if run.NoColor {
		styles = plainStyles(styles)
	}

	return pilltag.New(label,
		pilltag.WithEditable(editable),
		pilltag.WithRemovable(removable),
		pilltag.WithAutoComplete(suggestions),
		pilltag.WithStyles(styles),
		pilltag.WithKeyMap(pilltag.KeyMapFromConfig(cfg.Keys, pilltag.DefaultKeyMap())),
		pilltag.WithLogger(log),
	), nil
}

// plainStyles drops every colour but keeps the layout knobs.
func plainStyles(s pilltag.Styles) pilltag.Styles {
	return pilltag.Styles{
		FontFamily:   s.FontFamily,
		FontSize:     s.FontSize,
		CornerRadius: s.CornerRadius,
	}
}

func renderSnapshot(out io.Writer, tag *pilltag.Model, cfg defaults.File, log logr.Logger, width int) error {
	host := newHostModel(tag, cfg, log)
	host.help.SetWidth(width)
	_, err := fmt.Fprintln(out, host.render())
	return err
}

func runInteractive(ctx context.Context, cmd *cobra.Command, tag *pilltag.Model, cfg defaults.File) error {
	run, ok := settings.FromContext(ctx)
	if !ok {
		return errMissingRunSettings
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := newHostModel(tag, cfg, *logger.FromContext(ctx))
	host.help.SetWidth(run.Width)
	if run.NoColor {
		host.help.Styles = help.Styles{}
	}

	p := tea.NewProgram(host, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))
	if run.Watch {
		if err := watchConfig(ctx, run.ConfigPath, func(msg configReloadedMsg) { p.Send(msg) }); err != nil {
			return fmt.Errorf("watch %s: %w", run.ConfigPath, err)
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	for _, line := range host.events {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// detectTerminalSize returns the best-effort terminal width/height by probing
// stdout, stderr, and stdin, then falling back to $COLUMNS.
func detectTerminalSize() (int, int) {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()} {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}

// Package logger configures the process-wide zap logger and exposes it as a
// logr.Logger for the CLI and the pilltag component.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/pilltag/pkg/settings"
)

type loggerContextKey struct{}

const (
	CommitKey    = "commit"
	VersionKey   = "version"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

// Encoder formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options controls how the global logger is built.
type Options struct {
	// Level is the minimum zap level. Negative values enable logr V-levels:
	// -1 shows V(1).
	Level int8
	// Format is FormatJSON or FormatConsole. Empty means JSON.
	Format string
	// Output receives the log lines. Nil means stderr.
	Output io.Writer
}

var (
	once sync.Once

	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger

	defaultNoopLogger = logr.Discard()
)

// New builds a logger from opts without touching the global one.
func New(opts Options) (logr.Logger, *zap.Logger) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case FormatConsole:
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if opts.Output != nil {
		sink = zapcore.AddSync(opts.Output)
	}

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(zapcore.Level(opts.Level))).With(
		[]zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String(GoVersionKey, goVersion),
		},
	)

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
	return zapr.NewLogger(zl), zl
}

// Setup initialises the global logger. Only the first call has an effect.
func Setup(opts Options) *logr.Logger {
	once.Do(func() {
		lr, zl := New(opts)
		globalZapLogger = zl
		globalLogrLogger = &lr
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// Get initialises the global JSON logger at logLevel if needed and returns it.
func Get(logLevel int8) *logr.Logger {
	return Setup(Options{Level: logLevel})
}

// ParseLevel maps a level name to the zap level used in Options.
// "debug" also enables V(1) component diagnostics.
func ParseLevel(name string) (int8, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return int8(zapcore.InfoLevel), nil
	case "debug":
		return int8(zapcore.DebugLevel), nil
	case "warn", "warning":
		return int8(zapcore.WarnLevel), nil
	case "error":
		return int8(zapcore.ErrorLevel), nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// WithLogger returns ctx carrying log.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger in ctx, the global logger, or a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries. Call it before exit.
func Sync() {
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
// Windows consoles can return ERROR_INVALID_HANDLE wrapped in *os.PathError,
// which does not compare equal to syscall.EINVAL, so we also string-match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

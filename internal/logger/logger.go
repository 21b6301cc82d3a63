package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// rotatingFile keeps the lumberjack handle reachable so Sync can close it.
var (
	rotatingFile   io.Closer
	rotatingFileMu sync.Mutex
)

// Logger wraps a logrus.Entry carrying the service tag and any fields
// accumulated along the call chain.
type Logger struct {
	*logrus.Entry
}

// Config holds the basic logger settings. Jobs and tests construct loggers
// from it directly; the API server uses NewDefault, which also wires file
// rotation from the environment.
type Config struct {
	Level       string    // debug, info, warn, error
	Format      string    // json, text
	Output      io.Writer // defaults to stdout
	ServiceName string
}

// New creates a Logger from cfg. A nil cfg yields an info-level JSON logger
// on stdout tagged with the dentalcare service name.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "json", ServiceName: "dentalcare"}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return build(cfg.Level, cfg.Format, out, cfg.ServiceName)
}

// NewFromEnv creates a Logger from environment configuration, including
// rotated file output for deployed environments.
func NewFromEnv(envCfg *EnvConfig) *Logger {
	if envCfg == nil {
		envCfg = LoadFromEnv()
	}
	out := envCfg.Output
	if out == nil {
		out = envOutput(envCfg)
	}
	return build(envCfg.Level, envCfg.Format, out, envCfg.ServiceName)
}

// NewDefault is the constructor main() should use.
func NewDefault() *Logger {
	return NewFromEnv(nil)
}

func build(level, format string, out io.Writer, service string) *Logger {
	log := logrus.New()
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetReportCaller(true)

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  timestampLayout,
			CallerPrettyfier: shortCaller,
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampLayout,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
			CallerPrettyfier: shortCaller,
		})
	}

	return &Logger{Entry: log.WithField("service", service)}
}

// envOutput assembles the writer set for env-driven configuration: stdout
// unless file-only, plus a rotated log file outside the local environment.
func envOutput(cfg *EnvConfig) io.Writer {
	var writers []io.Writer
	if cfg.Environment == "local" || !cfg.LogFileOnly {
		writers = append(writers, os.Stdout)
	}
	if cfg.Environment != "local" && cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, file)

		rotatingFileMu.Lock()
		rotatingFile = file
		rotatingFileMu.Unlock()
	}
	if len(writers) == 1 {
		return writers[0]
	}
	if len(writers) == 0 {
		return os.Stdout
	}
	return io.MultiWriter(writers...)
}

// Sync closes the rotated log file, if one was opened. Defer it in main().
func Sync() error {
	rotatingFileMu.Lock()
	defer rotatingFileMu.Unlock()
	if rotatingFile != nil {
		return rotatingFile.Close()
	}
	return nil
}

// WithFields returns a derived Logger with the given fields applied.
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{Entry: l.Entry.WithFields(logrus.Fields(fields))}
}

// WithField returns a derived Logger with one additional field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Entry: l.Entry.WithField(key, value)}
}

// WithError returns a derived Logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Entry: l.Entry.WithError(err)}
}

// shortCaller trims caller info to function name and file:line.
func shortCaller(frame *runtime.Frame) (string, string) {
	fn := frame.Function
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		fn = fn[i+1:]
	}
	return fn, fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

// CtxDebug logs at Debug level with the context's fields.
func CtxDebug(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Debugf(format, args...)
}

// CtxInfo logs at Info level with the context's fields.
func CtxInfo(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Infof(format, args...)
}

// CtxWarn logs at Warn level with the context's fields.
func CtxWarn(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Warnf(format, args...)
}

// CtxError logs at Error level with the context's fields.
func CtxError(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Errorf(format, args...)
}

// Package logging is the process-wide leveled logger. Messages go to stderr
// so that stdout carries only the command's confirmation lines.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var (
	level = zap.NewAtomicLevelAt(LevelInfo)
	base  atomic.Pointer[zap.SugaredLogger]
)

func init() {
	SetOutput(os.Stderr)
}

func newCore(w io.Writer) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
}

// SetOutput redirects log output. It is meant for tests and for commands that
// want logs somewhere other than stderr.
func SetOutput(w io.Writer) {
	base.Store(zap.New(newCore(w)).Sugar())
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	level.SetLevel(l)
}

// ValidLevel reports whether s names a log level SetLogLevel accepts.
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return level.Level() }

// Public helpers
func Debugf(format string, a ...interface{}) { base.Load().Debugf(format, a...) }
func Infof(format string, a ...interface{})  { base.Load().Infof(format, a...) }
func Warnf(format string, a ...interface{})  { base.Load().Warnf(format, a...) }
func Errorf(format string, a ...interface{}) { base.Load().Errorf(format, a...) }

// Sync flushes buffered log entries.
func Sync() error {
	return base.Load().Sync()
}

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	dur := time.Since(start)
	Debugf("%s took %s", label, dur)
}

// ChartLogger adapts the package logger to go-chart's logging interface.
// go-chart reports layout details through Info, so those are demoted to
// debug.
func ChartLogger() chart.Logger {
	return chartLogger{base.Load().Named("chart")}
}

type chartLogger struct {
	s *zap.SugaredLogger
}

func (l chartLogger) Info(args ...interface{})                  { l.s.Debug(args...) }
func (l chartLogger) Infof(format string, args ...interface{})  { l.s.Debugf(format, args...) }
func (l chartLogger) Debug(args ...interface{})                 { l.s.Debug(args...) }
func (l chartLogger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l chartLogger) Err(err error)                             { l.s.Error(err) }
func (l chartLogger) FatalErr(err error)                        { l.s.Error(err) }
func (l chartLogger) Error(args ...interface{})                 { l.s.Error(args...) }
func (l chartLogger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }

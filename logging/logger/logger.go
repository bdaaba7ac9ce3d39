package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/example-api/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
	ErrorKey   = "error"
)

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	version      string
	desensitizer *Desensitizer

	mu      sync.Mutex
	logFile *os.File
	logPath string
	stop    chan struct{}
	esHook  *ElasticSearchHook
}

var (
	// stdLogger is the global logger
	stdLogger *Logger
	// once ensures that the logger is initialized only once
	once sync.Once
)

// StdLogger returns the single logger instance
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = NewLogger()
	})
	return stdLogger
}

// NewLogger creates a standalone logger with JSON output on stdout and
// default field desensitization.
func NewLogger() *Logger {
	l := &Logger{
		Logger:       logrus.New(),
		desensitizer: NewDesensitizer(config.DefaultDesensitization()),
	}
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Config) (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if c.Desensitization != nil {
		l.desensitizer = NewDesensitizer(c.Desensitization)
	}

	if c.Silent {
		l.SetOutput(io.Discard)
		return func() {}, nil
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath != "" {
			if err := l.setupLogFile(); err != nil {
				return nil, err
			}
			l.stop = make(chan struct{})
			go l.periodicLogRotation(l.stop)
		}
	default:
		l.SetOutput(os.Stdout)
	}

	if c.Elasticsearch != nil && len(c.Elasticsearch.Addresses) > 0 {
		hook, err := NewElasticSearchHook(c)
		if err != nil {
			return nil, fmt.Errorf("error initializing Elasticsearch hook: %w", err)
		}
		l.AddHook(hook)
		l.esHook = hook
	}

	return l.cleanup, nil
}

func (l *Logger) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
	if l.esHook != nil {
		ctx, cancel := context.WithTimeout(context.Background(), esIndexTimeout)
		_ = l.esHook.Close(ctx)
		cancel()
		l.esHook = nil
	}
	if l.logFile != nil {
		_ = l.logFile.Close()
		l.logFile = nil
	}
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return l.rotateLog()
}

// rotateLog switches output to the file for the current day
func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.Logger.SetOutput(f)
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
	l.logFile = f
	return nil
}

// periodicLogRotation rotates the log every 24 hours
func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if ctx != nil {
		if traceID := getTraceID(ctx); traceID != "" {
			fields[traceKey] = traceID
		}
	}

	if l.version != "" {
		fields[VersionKey] = l.version
	}

	return l.WithFields(fields)
}

// splitArgs turns ("msg", "k1", v1, "k2", v2) into a message and fields.
// Anything that does not fit that shape is logged as a plain message.
func splitArgs(args []any) (string, logrus.Fields, bool) {
	if len(args) == 0 {
		return "", nil, true
	}
	msg, ok := args[0].(string)
	if !ok || len(args)%2 == 0 {
		return "", nil, false
	}
	fields := make(logrus.Fields, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return "", nil, false
		}
		if err, isErr := args[i+1].(error); isErr && err != nil {
			fields[key] = err.Error()
			continue
		}
		fields[key] = args[i+1]
	}
	return msg, fields, true
}

// log logs a message with the given level
func (l *Logger) log(ctx context.Context, level logrus.Level, args ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	entry := l.entryFromContext(ctx)
	msg, fields, ok := splitArgs(args)
	if !ok {
		entry.Log(level, args...)
		return
	}
	if len(fields) > 0 {
		if l.desensitizer != nil {
			fields = l.desensitizer.DesensitizeFields(fields)
		}
		entry = entry.WithFields(fields)
	}
	entry.Log(level, msg)
}

// logf logs a formatted message
func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, args ...any) {
	l.log(ctx, logrus.DebugLevel, args...)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, args ...any) {
	l.log(ctx, logrus.InfoLevel, args...)
}

// Warn logs a warn message
func (l *Logger) Warn(ctx context.Context, args ...any) {
	l.log(ctx, logrus.WarnLevel, args...)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, args ...any) {
	l.log(ctx, logrus.ErrorLevel, args...)
}

// Fatal logs a fatal message
func (l *Logger) Fatal(ctx context.Context, args ...any) {
	l.log(ctx, logrus.FatalLevel, args...)
	l.Exit(1)
}

// Debugf logs a debug message with format
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.DebugLevel, format, args...)
}

// Infof logs an info message with format
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}

// Warnf logs a warn message with format
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}

// Errorf logs an error message with format
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}

// AddHook adds a hook to the logger
func (l *Logger) AddHook(hook logrus.Hook) {
	for _, hooks := range l.Hooks {
		for _, existing := range hooks {
			if existing == hook {
				return
			}
		}
	}
	l.Logger.AddHook(hook)
}

// SetVersion sets the version for logging
func SetVersion(v string) { StdLogger().SetVersion(v) }

// New initializes the standard logger
func New(c *config.Config) (func(), error) { return StdLogger().Init(c) }

// WithFields returns an entry with the given fields
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	l := StdLogger()
	if l.desensitizer != nil {
		fields = l.desensitizer.DesensitizeFields(fields)
	}
	return l.entryFromContext(ctx).WithFields(fields)
}

// Debugf logs a debug message with format
func Debugf(ctx context.Context, format string, args ...any) {
	StdLogger().Debugf(ctx, format, args...)
}

// Infof logs an info message with format
func Infof(ctx context.Context, format string, args ...any) {
	StdLogger().Infof(ctx, format, args...)
}

// Warnf logs a warn message with format
func Warnf(ctx context.Context, format string, args ...any) {
	StdLogger().Warnf(ctx, format, args...)
}

// Errorf logs an error message with format
func Errorf(ctx context.Context, format string, args ...any) {
	StdLogger().Errorf(ctx, format, args...)
}

// Fatalf logs a fatal message with format
func Fatalf(ctx context.Context, format string, args ...any) {
	l := StdLogger()
	l.logf(ctx, logrus.FatalLevel, format, args...)
	l.Exit(1)
}

package tpcc

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevelType uint8

const (
	LevelVerbose LogLevelType = 50
	LevelDebug   LogLevelType = 40
	LevelInfo    LogLevelType = 30
	LevelWarn    LogLevelType = 20
	LevelError   LogLevelType = 10
	LevelQuiet   LogLevelType = 0
)

var (
	nameToLevels = map[string]LogLevelType{
		"verbose": LevelVerbose,
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"quiet":   LevelQuiet,
	}
)

var (
	logLevel LogLevelType = LevelInfo
	logger   *zap.SugaredLogger
)

func init() {
	logger = newLogger(os.Stderr)
}

func newLogger(w zapcore.WriteSyncer) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	// Level filtering happens in Logf so that verbose can sit below debug.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(w),
		zap.DebugLevel)
	return zap.New(core).Sugar()
}

// SetLogOutput redirects log lines, mostly for tests.
func SetLogOutput(w zapcore.WriteSyncer) {
	logger = newLogger(w)
}

func SetLogLevel(level LogLevelType) {
	logLevel = level
}

func GetLogLevel() LogLevelType {
	return logLevel
}

func ParseLogLevel(name string) (LogLevelType, error) {
	level, ok := nameToLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LevelQuiet, NewConfigError(PropertyLogLevel, name, "unknown log level")
	}
	return level, nil
}

// ConfigureLogging applies `log.level`, with `debug=true` forcing at least
// debug output.
func ConfigureLogging(p Properties) error {
	level, err := ParseLogLevel(p.GetDefault(PropertyLogLevel, PropertyLogLevelDefault))
	if err != nil {
		return err
	}
	debug, err := p.GetBool(PropertyDebug, PropertyDebugDefault)
	if err != nil {
		return err
	}
	if debug && level < LevelDebug {
		level = LevelDebug
	}
	SetLogLevel(level)
	return nil
}

func Logf(level LogLevelType, format string, args ...interface{}) {
	if level > logLevel {
		return
	}
	switch level {
	case LevelError:
		logger.Errorf(format, args...)
	case LevelWarn:
		logger.Warnf(format, args...)
	case LevelInfo:
		logger.Infof(format, args...)
	default:
		logger.Debugf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	Logf(LevelError, format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logf(LevelWarn, format, args...)
}

func Infof(format string, args ...interface{}) {
	Logf(LevelInfo, format, args...)
}

func Debugf(format string, args ...interface{}) {
	Logf(LevelDebug, format, args...)
}

func Verbosef(format string, args ...interface{}) {
	Logf(LevelVerbose, format, args...)
}

func SyncLog() {
	logger.Sync()
}

func PromptPrintf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func Println(format string, args ...interface{}) {
	fmt.Printf(format, args...)
	fmt.Println("")
}

func EPrintln(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr, "")
}

package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatJSONStringConstant          = "json"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatJSON    LogFormat = LogFormat(logFormatJSONStringConstant)
	LogFormatConsole LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LoggerSettings select the level and encoding of a created logger.
type LoggerSettings struct {
	Level  LogLevel
	Format LogFormat
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// ParseLogLevel maps a case-insensitive level name to a LogLevel. Blank input
// yields the info level.
func ParseLogLevel(levelName string) (LogLevel, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(levelName))
	if len(normalizedName) == 0 {
		return LogLevelInfo, nil
	}
	candidateLevel := LogLevel(normalizedName)
	if _, levelExists := logLevelMapping[candidateLevel]; !levelExists {
		return "", fmt.Errorf(unsupportedLogLevelTemplateConstant, levelName)
	}
	return candidateLevel, nil
}

// ParseLogFormat maps a case-insensitive format name to a LogFormat. Blank
// input yields the console format.
func ParseLogFormat(formatName string) (LogFormat, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(formatName))
	switch LogFormat(normalizedName) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatConsole:
		return LogFormatConsole, nil
	}
	if len(normalizedName) == 0 {
		return LogFormatConsole, nil
	}
	return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, formatName)
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested settings.
func (factory *LoggerFactory) CreateLogger(settings LoggerSettings) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[settings.Level]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, settings.Level)
	}
	if settings.Format != LogFormatJSON && settings.Format != LogFormatConsole {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, settings.Format)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = string(settings.Format)
	if settings.Format == LogFormatConsole {
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	return configuration.Build()
}

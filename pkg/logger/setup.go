package logger

import "io"

// SetupLogger initializes the default logger from CLI/config values.
func SetupLogger(logLevel string, logJSON, logSource bool) {
	var level LogLevel
	switch logLevel {
	case "debug":
		level = DebugLevel
	case "info":
		level = InfoLevel
	case "warn":
		level = WarnLevel
	case "error":
		level = ErrorLevel
	default:
		level = InfoLevel
	}
	_ = Init(&Config{
		Level:      level,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
}

// InitForTests routes all log output to io.Discard so test output stays clean.
func InitForTests() {
	_ = Init(&Config{
		Level:  DebugLevel,
		Output: io.Discard,
	})
}

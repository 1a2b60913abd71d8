package logging

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lndk/hundred-names/internal/constants"
)

type Fields map[string]interface{}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelError
)

// minLevel is resolved once from HUNDREDNAMES_LOG_LEVEL at startup.
// Unknown values fall back to info.
var minLevel = parseLevel(os.Getenv(constants.EnvLogLevel))

func parseLevel(s string) level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return levelDebug
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func output(lvl level, name, msg string, fields Fields) {
	if lvl < minLevel {
		return
	}
	if fields == nil {
		fields = Fields{}
	}
	fields["level"] = name
	fields["ts"] = time.Now().UTC().Format(time.RFC3339)
	fields["msg"] = msg
	b, err := json.Marshal(fields)
	if err != nil {
		// fallback to plain logging
		log.Printf("%s: %s (%v)\n", name, msg, fields)
		return
	}
	log.Println(string(b))
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	output(levelDebug, "debug", msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(levelInfo, "info", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(levelError, "error", msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(levelError, "fatal", msg, fields)
	os.Exit(1)
}

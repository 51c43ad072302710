package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// log is the shared application logger. Output is plain text with timestamps;
// structured fields carry the component tag.
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// SetDebug toggles debug-level output.
func SetDebug(on bool) {
	if on {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

func tagged(tag string) *logrus.Entry {
	return log.WithField("tag", tag)
}

// Info logs an informational message under a component tag.
func Info(tag, format string, args ...interface{}) {
	tagged(tag).Infof(format, args...)
}

// Success logs a completed operation. Same level as Info, kept as a separate
// helper so call sites read naturally.
func Success(tag, format string, args ...interface{}) {
	tagged(tag).WithField("ok", true).Infof(format, args...)
}

// Warn logs a recoverable problem.
func Warn(tag, format string, args ...interface{}) {
	tagged(tag).Warnf(format, args...)
}

// Error logs a failure.
func Error(tag, format string, args ...interface{}) {
	tagged(tag).Errorf(format, args...)
}

// Debug logs diagnostic detail, visible only at debug level.
func Debug(tag, format string, args ...interface{}) {
	tagged(tag).Debugf(format, args...)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("eve-arbitrage %s - regional market arbitrage scanner\n", version)
}

// Server logs the listen address once the HTTP server is up.
func Server(addr string) {
	Success("HTTP", "listening on http://%s", addr)
}

// Section prints a visual separator for grouped console output.
func Section(title string) {
	fmt.Printf("--- %s ---\n", title)
}

// Stats logs a single named counter.
func Stats(key string, value interface{}) {
	Info("STATS", "%s=%v", key, value)
}

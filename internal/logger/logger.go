// Package logger builds the structured JSON logger shared by every component.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// localTimeFormatter renders entry timestamps in the configured location.
type localTimeFormatter struct {
	logrus.Formatter
	loc *time.Location
}

func (f localTimeFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.Formatter.Format(e)
}

// New creates a JSON logger writing to stdout with the service field attached.
func New(serviceName, level string, loc *time.Location) *logrus.Entry {
	return NewWithWriter(os.Stdout, serviceName, level, loc)
}

// NewWithWriter is New with an explicit output, used by tests.
func NewWithWriter(w io.Writer, serviceName, level string, loc *time.Location) *logrus.Entry {
	if loc == nil {
		loc = time.UTC
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(localTimeFormatter{
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		},
		loc: loc,
	})
	log.SetLevel(ParseLevel(level))

	return log.WithField("service", serviceName)
}

// ParseLevel maps LOG_LEVEL values to logrus levels, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger interface for our logging needs
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// LogrusLogger wraps logrus.Logger to implement our Logger interface
type LogrusLogger struct {
	*logrus.Logger
}

var (
	defaultMu     sync.Mutex
	defaultLogger Logger
)

// Default returns the process-wide logger, configured from LOG_LEVEL and
// LOG_FORMAT on first use unless Configure replaced it.
func Default() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		logger, err := Setup(os.Getenv("LOG_LEVEL"), "", os.Getenv("LOG_FORMAT"))
		if err != nil {
			logger = &LogrusLogger{Logger: logrus.StandardLogger()}
		}
		defaultLogger = logger
	}
	return defaultLogger
}

// Configure replaces the process-wide logger. The CLI calls this with its
// --log-level/--log-format flags before any scenario runs.
func Configure(logLevel, logFormat string) error {
	logger, err := Setup(logLevel, "", logFormat)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
	return nil
}

// Setup configures and returns a logger instance
func Setup(logLevel, logFile, logFormat string) (Logger, error) {
	logger := logrus.New()
	logger.SetLevel(determineLogLevel(logLevel))

	var output io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		output = file
	}
	logger.SetOutput(output)

	if logFormat == "json" {
		logger.SetFormatter(&JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &LogrusLogger{Logger: logger}, nil
}

func determineLogLevel(logLevel string) logrus.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARNING", "WARN":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "CRITICAL", "FATAL":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// JSONFormatter is a simple JSON formatter for logrus
type JSONFormatter struct{}

// Format formats the log entry as JSON
func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := map[string]interface{}{
		"time":  entry.Time.Format("2006-01-02 15:04:05"),
		"level": strings.ToUpper(entry.Level.String()),
		"name":  "browserdog",
		"msg":   entry.Message,
	}

	for k, v := range entry.Data {
		data[k] = v
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(jsonData, '\n'), nil
}

package main

import (
	"io"
	"path/filepath"
	"reflect"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "inbetween.log"

// cliHook for logging Info level and above to the terminal while the full
// log goes to the rotating file.
type cliHook struct {
	out io.Writer
}

func (h *cliHook) Levels() []log.Level {
	return []log.Level{log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func (h *cliHook) Fire(entry *log.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	_, err = io.WriteString(h.out, line)
	return err
}

// setupLogger returns a JSON logger. With logDir set it writes to a
// rotating file there and mirrors Info and above to stderr; otherwise it
// writes to stderr directly. The returned closer releases the log file.
func setupLogger(logDir string, verbose bool, stderr io.Writer) (*log.Logger, io.Closer) {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC1123Z,
	})

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	if logDir == "" {
		logger.SetOutput(stderr)
		return logger, io.NopCloser(nil)
	}

	// Rotating file logger setup
	lumberjackLogger := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    5, // in MB
		MaxBackups: 10,
		MaxAge:     30,   // in days
		Compress:   true, // compress old log files
	}
	logger.SetOutput(lumberjackLogger)
	logger.AddHook(&cliHook{out: stderr})

	return logger, lumberjackLogger
}

// StructFields turns the exported fields of a struct (or pointer to one)
// into log fields.
func StructFields(data any) log.Fields {
	fields := log.Fields{}

	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	typ := val.Type()

	for i := range val.NumField() {
		if !typ.Field(i).IsExported() {
			continue
		}
		fields[typ.Field(i).Name] = val.Field(i).Interface()
	}

	return fields
}

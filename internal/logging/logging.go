package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/classlens/classlens/internal/config"
)

// Log is the global logger.
var Log = logrus.New()

// Init configures Log from cfg. When cfg names a file, entries are
// appended there; otherwise they go to fallback. The returned function
// closes the file, if any.
func Init(cfg config.LogConfig, fallback io.Writer) (func() error, error) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   cfg.File != "",
	})

	closer := func() error { return nil }
	if cfg.File == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		Log.SetOutput(fallback)
	} else {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		Log.SetOutput(f)
		closer = f.Close
	}

	Log.Debugf("Log level set to: %s", Log.GetLevel())
	return closer, nil
}

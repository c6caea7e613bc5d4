package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// newLogger builds the session logger. The terminal belongs to the editor,
// so output goes to the configured file or nowhere. The returned closer
// releases the file.
func newLogger(config *Config) (*logrus.Entry, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
		DisableColors:   true,
	})
	logger.SetLevel(config.LogLevel)

	var closer io.Closer = nopCloser{}
	if config.LogFile == "" {
		logger.SetOutput(io.Discard)
	} else {
		file, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(file)
		closer = file
	}

	entry := logger.WithField("session", uuid.NewString())
	return entry, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

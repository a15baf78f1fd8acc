package support

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
)

// Logger builds the request logger and applies the same level to logrus,
// which the store provisioning code logs through.
func Logger(settings Settings) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid LOG_LEVEL %q", settings.LogLevel)
	}

	var out io.Writer = os.Stderr
	if settings.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
		logrus.SetFormatter(&logrus.TextFormatter{})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if logrusLevel, err := logrus.ParseLevel(level.String()); err == nil {
		logrus.SetLevel(logrusLevel)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &logger, nil
}

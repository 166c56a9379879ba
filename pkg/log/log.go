package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const ServiceName = "runmind-api"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests never go through main, so the logger has to be usable without an
// explicit Init call.
func init() {
	Init("dev", "info")
}

// Init configures the package logger. Production output is JSON so it can be
// shipped as is, everything else uses the human readable text formatter.
func Init(env string, level string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if env == "prod" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	Log = logger.WithFields(logrus.Fields{"service": ServiceName, "env": env})
}

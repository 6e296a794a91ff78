package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	if os.Getenv("CTXTREE_DEBUG") != "" {
		l.SetLevel(logrus.DebugLevel)
	}
	return l.WithField("app", "ctxtree")
}

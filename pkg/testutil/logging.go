package testutil

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Importing testutil silences the standard logger unless tests run verbose.
// TEST_LOG_LEVEL overrides the level used when logs are shown.
func init() {
	logger := logrus.StandardLogger()

	level := logrus.TraceLevel
	if parsed, err := logrus.ParseLevel(os.Getenv("TEST_LOG_LEVEL")); err == nil {
		level = parsed
	}
	logger.SetLevel(level)

	if !isVerbose(os.Args) {
		logger.SetOutput(io.Discard)
	}
}

func isVerbose(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "-test.v", arg == "-test.v=true", strings.HasPrefix(arg, "-test.v=test2json"):
			return true
		}
	}
	return false
}

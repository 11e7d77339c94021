package apierror

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Wallet rejections that are user choices rather than failures.
var benignMessages = []string{
	"rejected the request",
	"user denied transaction signature",
}

// IsBenign returns whether err is a known benign failure, such as the user
// declining to sign.
func IsBenign(err error) bool {
	if err == nil {
		return false
	}

	message := strings.ToLower(err.Error())
	for _, benign := range benignMessages {
		if strings.Contains(message, benign) {
			return true
		}
	}
	return false
}

// Notify logs err for the user unless it is benign, and reports whether it
// was logged.
func Notify(log *logrus.Entry, err error) bool {
	if err == nil || IsBenign(err) {
		return false
	}

	entry := log.WithError(err)
	if apiErr, ok := As(err); ok {
		entry = entry.WithFields(logrus.Fields{
			"code":        apiErr.Code.String(),
			"http_status": apiErr.HttpStatus,
		})
	}
	entry.Warn(userMessage(err))
	return true
}

func userMessage(err error) string {
	if apiErr, ok := As(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

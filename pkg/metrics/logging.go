package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// LogFormatter is a logrus.Formatter that forwards every entry, including its
// fields, to New Relic and enriches the locally formatted line with linking
// metadata.
//
// Based off of: https://github.com/newrelic/go-agent/blob/f1942e10f0819e2c854d5d7289eb0dc1c52a00af/v3/integrations/logcontext-v2/nrlogrus/formatter.go
type LogFormatter struct {
	app       *newrelic.Application
	formatter logrus.Formatter
}

func NewLogFormatter(app *newrelic.Application, formatter logrus.Formatter) LogFormatter {
	return LogFormatter{
		app:       app,
		formatter: formatter,
	}
}

func (f LogFormatter) Format(e *logrus.Entry) ([]byte, error) {
	logBytes, err := f.formatter.Format(e)
	if err != nil {
		return nil, err
	}
	b := bytes.NewBuffer(bytes.TrimRight(logBytes, "\n"))

	logData := newrelic.LogData{
		Severity: e.Level.String(),
		Message:  formatMessage(e),
	}

	var txn *newrelic.Transaction
	if e.Context != nil {
		txn = newrelic.FromContext(e.Context)
	}

	if txn != nil {
		txn.RecordLog(logData)
		err = newrelic.EnrichLog(b, newrelic.FromTxn(txn))
	} else {
		f.app.RecordLog(logData)
		err = newrelic.EnrichLog(b, newrelic.FromApp(f.app))
	}
	if err != nil {
		return nil, err
	}

	b.WriteString("\n")
	return b.Bytes(), nil
}

func formatMessage(e *logrus.Entry) string {
	if len(e.Data) == 0 {
		return e.Message
	}

	errorString := "<nil>"
	extraData := make(map[string]interface{})
	for k, v := range e.Data {
		if k != logrus.ErrorKey {
			extraData[k] = v
			continue
		}
		if typed, ok := v.(error); ok {
			errorString = fmt.Sprintf("%q", typed.Error())
		}
	}

	extraDataJsonBytes, err := json.Marshal(extraData)
	if err != nil {
		return e.Message
	}
	return fmt.Sprintf("message=%q, error=%s, data=%s", e.Message, errorString, string(extraDataJsonBytes))
}

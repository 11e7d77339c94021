package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNoApplication(t *testing.T) {
	ctx := context.Background()

	_, ok := ApplicationFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, ctx, NewContext(ctx, nil))

	// None of these may panic without an application
	RecordCount(ctx, "count", 1)
	RecordDuration(ctx, "duration", time.Second)
	RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})

	tracer := TraceMethodCall(ctx, "metrics", "Test")
	assert.Nil(t, tracer)
	tracer.AddAttribute("key", "value")
	tracer.AddAttributes(map[string]interface{}{"key": "value"})
	tracer.OnError(errors.New("error"))
	tracer.End()
}

func TestFormatMessage(t *testing.T) {
	entry := &logrus.Entry{Message: "hello", Data: logrus.Fields{}}
	assert.Equal(t, "hello", formatMessage(entry))

	entry.Data = logrus.Fields{
		logrus.ErrorKey: errors.New("boom"),
		"raffle_id":     7,
	}
	assert.Equal(t, `message="hello", error="boom", data={"raffle_id":7}`, formatMessage(entry))
}

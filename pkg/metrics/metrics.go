package metrics

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type newRelicContextKey struct{}

// NewContext returns a context carrying the New Relic application used by
// the record and trace helpers.
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	if app == nil {
		return ctx
	}
	return context.WithValue(ctx, newRelicContextKey{}, app)
}

// ApplicationFromContext returns the New Relic application carried by ctx, if any.
func ApplicationFromContext(ctx context.Context) (*newrelic.Application, bool) {
	app, ok := ctx.Value(newRelicContextKey{}).(*newrelic.Application)
	return app, ok && app != nil
}

// RecordCount records a count metric
func RecordCount(ctx context.Context, metricName string, count uint64) {
	if nr, ok := ApplicationFromContext(ctx); ok {
		nr.RecordCustomMetric(metricName, float64(count))
	}
}

// RecordDuration records a duration metric
func RecordDuration(ctx context.Context, metricName string, duration time.Duration) {
	if nr, ok := ApplicationFromContext(ctx); ok {
		nr.RecordCustomMetric(metricName, float64(duration/time.Millisecond))
	}
}

// RecordEvent records a custom event with a set of attributes
func RecordEvent(ctx context.Context, eventName string, attributes map[string]interface{}) {
	if nr, ok := ApplicationFromContext(ctx); ok {
		nr.RecordCustomEvent(eventName, attributes)
	}
}

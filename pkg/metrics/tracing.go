package metrics

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// TraceMethodCall traces a method call with a given struct/package and method
// names. The segment joins the transaction in ctx, or a new background
// transaction when ctx only carries an application. A nil tracer is returned
// when neither is available, and all of its methods are no-ops.
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	name := fmt.Sprintf("%s %s", structOrPackageName, methodName)

	txn := newrelic.FromContext(ctx)
	var ownsTxn bool
	if txn == nil {
		app, ok := ApplicationFromContext(ctx)
		if !ok {
			return nil
		}
		txn = app.StartTransaction(name)
		ownsTxn = true
	}

	return &MethodTracer{
		txn:     txn,
		seg:     txn.StartSegment(name),
		ownsTxn: ownsTxn,
	}
}

// MethodTracer collects analytics for a given method call within a trace.
type MethodTracer struct {
	txn     *newrelic.Transaction
	seg     *newrelic.Segment
	ownsTxn bool
}

// AddAttribute adds a key-value pair metadata to the method trace
func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}

	t.seg.AddAttribute(key, value)
}

// AddAttributes adds a set of key-value pair metadata to the method trace
func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	if t == nil {
		return
	}

	for key, value := range attributes {
		t.seg.AddAttribute(key, value)
	}
}

// OnError observes an error within a method trace
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	t.txn.NoticeError(err)
}

// End completes the trace for the method call.
func (t *MethodTracer) End() {
	if t == nil {
		return
	}

	t.seg.End()
	if t.ownsTxn {
		t.txn.End()
	}
}

package otel

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
)

// RedactedValue replaces secret query values in span attributes.
const RedactedValue = "REDACTED"

// urlAttributes carry a full URL under the old and the stable HTTP conventions.
var urlAttributes = map[attribute.Key]bool{
	"http.url": true,
	"url.full": true,
}

const queryAttribute attribute.Key = "url.query"

type queryRedactor struct {
	next   trace.SpanProcessor
	params []string
}

// NewQueryRedactor wraps next so that ended spans reach it with the values of
// the given query parameters masked in URL attributes.
func NewQueryRedactor(next trace.SpanProcessor, params ...string) trace.SpanProcessor {
	return queryRedactor{next: next, params: params}
}

func (p queryRedactor) OnStart(ctx context.Context, s trace.ReadWriteSpan) {
	p.next.OnStart(ctx, s)
}

func (p queryRedactor) OnEnd(s trace.ReadOnlySpan) {
	p.next.OnEnd(p.redact(s))
}

func (p queryRedactor) Shutdown(ctx context.Context) error   { return p.next.Shutdown(ctx) }
func (p queryRedactor) ForceFlush(ctx context.Context) error { return p.next.ForceFlush(ctx) }

// redactedSpan overrides the attributes of an ended span.
type redactedSpan struct {
	trace.ReadOnlySpan
	attrs []attribute.KeyValue
}

func (s redactedSpan) Attributes() []attribute.KeyValue { return s.attrs }

func (p queryRedactor) redact(s trace.ReadOnlySpan) trace.ReadOnlySpan {
	if len(p.params) == 0 {
		return s
	}

	attrs := s.Attributes()
	var out []attribute.KeyValue
	for i, kv := range attrs {
		var (
			v  string
			ok bool
		)
		switch {
		case urlAttributes[kv.Key]:
			v, ok = p.redactURL(kv.Value.AsString())
		case kv.Key == queryAttribute:
			v, ok = p.redactQuery(kv.Value.AsString())
		}
		if !ok {
			continue
		}
		if out == nil {
			out = append([]attribute.KeyValue(nil), attrs...)
		}
		out[i] = attribute.String(string(kv.Key), v)
	}
	if out == nil {
		return s
	}
	return redactedSpan{ReadOnlySpan: s, attrs: out}
}

func (p queryRedactor) redactURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return "", false
	}
	q, ok := p.redactQuery(u.RawQuery)
	if !ok {
		return "", false
	}
	u.RawQuery = q
	return u.String(), true
}

func (p queryRedactor) redactQuery(raw string) (string, bool) {
	q, err := url.ParseQuery(raw)
	if err != nil {
		// unparsable queries are dropped rather than exported as-is
		return RedactedValue, true
	}
	changed := false
	for _, name := range p.params {
		if q.Has(name) {
			q.Set(name, RedactedValue)
			changed = true
		}
	}
	if !changed {
		return "", false
	}
	return q.Encode(), true
}

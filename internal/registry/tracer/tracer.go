// Package tracer is a small tracing facade for the voter registry.
//
// Registry code starts spans through the Tracer interface so tests can run
// with NoopTracer while the binary wires OTelTracer.
package tracer

import (
	"context"
	"time"
)

// Span is an active span. End must be called exactly once.
type Span interface {
	// End completes the span and marks it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to a span.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Strings(key string, values []string) Attribute {
	return Attribute{Key: key, Value: values}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanHydrate    = "registry.hydrate"
	SpanLoad       = "registry.load"
	SpanFetchBooth = "registry.fetch_booth"
	SpanUpdate     = "registry.update"
)

// Attribute keys.
const (
	AttrBoothID    = "booth_id"
	AttrBoothIDs   = "booth_ids"
	AttrRecords    = "records"
	AttrAccepted   = "accepted"
	AttrDuplicates = "duplicates"
	AttrUnkeyed    = "unkeyed"
	AttrFound      = "found"
)

// Event names.
const (
	EventJournalEmitted = "journal.emitted"
)

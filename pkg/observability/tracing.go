// Package observability provides distributed tracing for simulation runs.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer for simulation operations.
const TracerName = "simkit"

// Span attribute keys
const (
	AttrMeetingID  = "meeting_id"
	AttrStage      = "stage"
	AttrTurn       = "turn"
	AttrSpeaker    = "speaker"
	AttrOracleCall = "oracle_call"
	AttrItemCount  = "item_count"
)

// Span names
const (
	SpanMeetingRun   = "boardroom.run"
	SpanMeetingTurn  = "boardroom.turn"
	SpanOracleCall   = "oracle.call"
	SpanPlanSchedule = "workplan.schedule"
)

// Tracer provides tracing for meeting and scheduling operations.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a simulation tracer off the global otel provider.
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(TracerName)}
}

// StartMeetingSpan starts a root span for one meeting run.
func (t *Tracer) StartMeetingSpan(ctx context.Context, meetingID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanMeetingRun,
		trace.WithAttributes(attribute.String(AttrMeetingID, meetingID)),
	)
}

// StartTurnSpan starts a span for a single meeting turn.
func (t *Tracer) StartTurnSpan(ctx context.Context, turn int, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanMeetingTurn,
		trace.WithAttributes(
			attribute.Int(AttrTurn, turn),
			attribute.String(AttrStage, stage),
		),
	)
}

// StartOracleSpan starts a span for one oracle exchange. speaker may be
// empty for calls not made on behalf of a participant.
func (t *Tracer) StartOracleSpan(ctx context.Context, call, speaker string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String(AttrOracleCall, call)}
	if speaker != "" {
		attrs = append(attrs, attribute.String(AttrSpeaker, speaker))
	}
	return t.tracer.Start(ctx, SpanOracleCall, trace.WithAttributes(attrs...))
}

// StartScheduleSpan starts a span for one schedule computation.
func (t *Tracer) StartScheduleSpan(ctx context.Context, itemCount int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanPlanSchedule,
		trace.WithAttributes(attribute.Int(AttrItemCount, itemCount)),
	)
}

// RecordError marks the span failed and records the error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

package booking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking")

func startSpan(ctx context.Context, name string, barberID uint, date string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("barber.id", int64(barberID)),
		attribute.String("booking.date", date),
	))
}

// endSpan marks infrastructure failures only; business rejections are
// expected outcomes.
func endSpan(span trace.Span, err error) {
	if kind, ok := httperr.KindOf(err); err != nil && (!ok || kind == httperr.KindUnavailable) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

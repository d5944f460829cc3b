package telemetry

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/crewdesk/crewdesk/internal/middleware"
)

const tracerName = "crewdesk-api"

// FiberMiddleware traces every HTTP request as a server span. The span picks
// up the authenticated principal after the handler chain has run, so spans
// for admin and manager routes can be filtered by who made the call.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	propagator := otel.GetTextMapPropagator()

	return func(c *fiber.Ctx) error {
		ctx := propagator.Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", c.Method(), c.Path()),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.url", c.OriginalURL()),
				attribute.String("http.route", c.Route().Path),
				attribute.String("http.client_ip", c.IP()),
				attribute.String("http.user_agent", c.Get("User-Agent")),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)

		// Echo the trace ID so a client error report can be matched to its trace.
		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		err := c.Next()

		// The auth gate runs inside Next, so the principal is only known here.
		if p := middleware.GetPrincipal(c); p.UserID != "" {
			span.SetAttributes(
				attribute.String("enduser.id", p.UserID),
				attribute.String("enduser.role", p.Role),
			)
		}

		statusCode := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", statusCode))

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case statusCode >= 400:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}

// SpanFromContext returns the request's active span.
func SpanFromContext(c *fiber.Ctx) trace.Span {
	return trace.SpanFromContext(c.UserContext())
}

// AddSpanEvent attaches an event to the request's span.
func AddSpanEvent(c *fiber.Ctx, name string, attrs ...attribute.KeyValue) {
	SpanFromContext(c).AddEvent(name, trace.WithAttributes(attrs...))
}

package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"socialfeed/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// routeResources maps the leading route segment to the span attribute that
// carries its :id parameter.
var routeResources = map[string]string{
	"posts":    "post.id",
	"comments": "comment.id",
	"users":    "author.id",
}

// TracingMiddleware opens a server span per request. The span is renamed to
// the matched route pattern once routing is done, and tagged with the post,
// comment or author the route addresses.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := observability.Tracer.Start(ctx, "HTTP "+c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Set("X-Trace-ID", traceID)
		if requestID := c.Locals("requestid"); requestID != nil {
			span.SetAttributes(attribute.String("request.id", fmt.Sprintf("%v", requestID)))
		}
		c.SetUserContext(ctx)

		err := c.Next()

		// Unmatched requests leave a middleware route behind; keep the generic name.
		if route := c.Route(); route.Method == c.Method() {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
			if key, id, ok := routeResource(route.Path, c.Params("id")); ok {
				span.SetAttributes(attribute.Int64(key, id))
			}
		}

		// A returned error has not reached the error handler yet, so the
		// response still carries the default status.
		status := c.Response().StatusCode()
		if err != nil {
			span.RecordError(err)
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, utils.StatusMessage(status))
		}

		if actor := ActorFrom(c); actor.IsAuthenticated() {
			span.SetAttributes(attribute.Int64("user.id", int64(actor.UserID)))
		}

		return err
	}
}

// routeResource resolves the attribute for a route such as /api/posts/:id/like.
// Routes without an :id segment, or with an id that does not parse, yield ok=false.
func routeResource(pattern, rawID string) (string, int64, bool) {
	segments := strings.Split(strings.Trim(pattern, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		key, known := routeResources[segments[i]]
		if !known || segments[i+1] != ":id" {
			continue
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			return "", 0, false
		}
		return key, id, true
	}
	return "", 0, false
}

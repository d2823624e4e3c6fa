package api

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

// traceHandler correlates log records with the active span, if any.
type traceHandler struct {
	slog.Handler
}

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
			slog.Bool("trace_sampled", sc.IsSampled()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}

func NewLogger(w io.Writer, serviceName string, level slog.Level) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(traceHandler{jsonHandler}).With(slog.String("service", serviceName))
}

func SetupGlobalHandler(serviceName string, level slog.Level) {
	slog.SetDefault(NewLogger(os.Stdout, serviceName, level))

	slog.Info("Logger initialized", "service", serviceName, "level", level.String())
}

// RequestLogger writes one line per request after the handler chain ran.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		level := slog.LevelInfo
		status := c.Response().StatusCode()
		if err != nil || status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}

		slog.LogAttrs(c.UserContext(), level, "HTTP request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)

		return err
	}
}

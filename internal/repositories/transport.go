package repositories

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"weather-forecast/internal/models"
)

const tracerName = "weather-forecast/internal/repositories"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// classifyNetworkError maps a transport failure onto the user-facing
// network taxonomy.
func classifyNetworkError(err error) models.NetworkErrorKind {
	var (
		netErr net.Error
		dnsErr *net.DNSError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NetworkTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return models.NetworkTimeout
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.ENETDOWN):
		return models.NetworkNoConnectivity
	case errors.As(err, &dnsErr):
		return models.NetworkHostUnreachable
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.EHOSTDOWN):
		return models.NetworkHostUnreachable
	default:
		return models.NetworkOther
	}
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

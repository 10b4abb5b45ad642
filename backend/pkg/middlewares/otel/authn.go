package otel

import (
	"context"

	beService "github.com/lamassuiot/authping/backend/pkg/services"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/lamassuiot/authping/core/pkg/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

type AuthnOTelTracer struct {
	next        services.AuthnService
	tracerName  string
	serviceName string
}

func NewAuthnOTelTracer() beService.AuthnMiddleware {
	return func(next services.AuthnService) services.AuthnService {
		return &AuthnOTelTracer{
			next:        next,
			tracerName:  "authn-svc",
			serviceName: "AuthPing",
		}
	}
}

func (mw *AuthnOTelTracer) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(mw.tracerName).Start(ctx, name, trace.WithAttributes(semconv.ServiceName(mw.serviceName)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (mw *AuthnOTelTracer) Login(ctx context.Context, input services.LoginInput) (output *models.TokenPair, err error) {
	ctx, span := mw.start(ctx, "AuthnService.Login")
	defer func() { endSpan(span, err) }()

	return mw.next.Login(ctx, input)
}

func (mw *AuthnOTelTracer) Refresh(ctx context.Context, input services.RefreshInput) (output *models.TokenPair, err error) {
	ctx, span := mw.start(ctx, "AuthnService.Refresh")
	defer func() { endSpan(span, err) }()

	return mw.next.Refresh(ctx, input)
}

func (mw *AuthnOTelTracer) Register(ctx context.Context, input services.RegisterInput) (output *models.User, err error) {
	ctx, span := mw.start(ctx, "AuthnService.Register")
	defer func() { endSpan(span, err) }()

	return mw.next.Register(ctx, input)
}

func (mw *AuthnOTelTracer) Authenticate(ctx context.Context, input services.AuthenticateInput) (output *models.Identity, err error) {
	ctx, span := mw.start(ctx, "AuthnService.Authenticate")
	defer func() { endSpan(span, err) }()

	return mw.next.Authenticate(ctx, input)
}

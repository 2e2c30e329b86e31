package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/config"
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study"
	"github.com/rsimmons/yukawa/internal/transport/middleware"
	"github.com/rsimmons/yukawa/internal/transport/rest"
)

type studyService interface {
	PickActivity(ctx context.Context, input study.PickActivityInput) (*domain.Activity, error)
	RecordResult(ctx context.Context, input study.RecordResultInput) (study.Report, error)
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// HandlerDeps are the collaborators of the HTTP handler tree.
type HandlerDeps struct {
	Logger    *slog.Logger
	Study     studyService
	Health    *rest.HealthHandler
	Validator tokenValidator
	Limiter   *middleware.RateLimiter
	Config    *config.Config
}

// NewHandler builds the routed and wrapped HTTP handler. Logger sits next to
// the mux so it sees the matched path values.
func NewHandler(d HandlerDeps) http.Handler {
	mux := http.NewServeMux()
	d.Health.Register(mux)
	rest.NewActivityHandler(d.Study, d.Logger).Register(mux)

	var limit middleware.Middleware
	if d.Limiter != nil {
		limit = d.Limiter.Limit()
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.Config.CORS),
		middleware.Auth(d.Validator),
		limit,
		middleware.Logger(d.Logger),
	)(mux)
}

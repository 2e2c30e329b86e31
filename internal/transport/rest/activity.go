package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study"
)

// studyService defines the minimal interface needed by ActivityHandler.
type studyService interface {
	PickActivity(ctx context.Context, input study.PickActivityInput) (*domain.Activity, error)
	RecordResult(ctx context.Context, input study.RecordResultInput) (study.Report, error)
}

// ActivityHandler serves the per-language study endpoints.
type ActivityHandler struct {
	svc studyService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc studyService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

// Register mounts the handler's routes on mux.
func (h *ActivityHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/{lang}/activity", h.PickActivity)
	mux.HandleFunc("POST /v1/{lang}/result", h.RecordResult)
}

type resultRequest struct {
	AtomsIntroduced []string `json:"atoms_introduced"`
	AtomsExposed    []string `json:"atoms_exposed"`
	AtomsForgot     []string `json:"atoms_forgot"`
	AtomsPassed     []string `json:"atoms_passed"`
	AtomsFailed     []string `json:"atoms_failed"`
}

type resultResponse struct {
	Report study.Report `json:"report"`
}

// PickActivity handles POST /v1/{lang}/activity.
func (h *ActivityHandler) PickActivity(w http.ResponseWriter, r *http.Request) {
	act, err := h.svc.PickActivity(r.Context(), study.PickActivityInput{
		Lang: r.PathValue("lang"),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, act)
}

// RecordResult handles POST /v1/{lang}/result.
func (h *ActivityHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.svc.RecordResult(r.Context(), study.RecordResultInput{
		Lang: r.PathValue("lang"),
		Grades: study.GradeBatch{
			Introduced: req.AtomsIntroduced,
			Exposed:    req.AtomsExposed,
			Forgot:     req.AtomsForgot,
			Passed:     req.AtomsPassed,
			Failed:     req.AtomsFailed,
		},
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if report == nil {
		report = study.Report{}
	}
	writeJSON(w, http.StatusOK, resultResponse{Report: report})
}

func (h *ActivityHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Fields: ve.Errors})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrExhausted):
		writeError(w, http.StatusNotFound, "no activity available")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown language")
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrPrecondition):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrContentDefect):
		h.log.ErrorContext(r.Context(), "content defect", slog.String("lang", r.PathValue("lang")), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "content defect")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Package handler exposes the screening HTTP surface.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sichrplace/internal/screening/service"
	id "sichrplace/pkg/domain"
	dErrors "sichrplace/pkg/domain-errors"
	"sichrplace/pkg/platform/httputil"
	"sichrplace/pkg/requestcontext"
)

// Service defines the screening operations the handler depends on.
type Service interface {
	Submit(ctx context.Context, input service.SubmitInput) (*service.Result, error)
	GetStatus(ctx context.Context, screeningID id.ScreeningID) (*service.Result, error)
	GetStatusByKey(ctx context.Context, tenantID id.TenantID, apartmentID id.ApartmentID) (*service.Result, error)
}

// Handler handles screening endpoints.
type Handler struct {
	logger    *slog.Logger
	screening Service
}

// New creates a new screening Handler.
func New(screening Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, screening: screening}
}

// Register registers the screening routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/screenings", func(r chi.Router) {
		r.Post("/", h.handleSubmit)
		r.Get("/", h.handleGetByKey)
		r.Get("/{screeningID}", h.handleGetStatus)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.screening.Submit(ctx, req.ToInput())
	if err != nil {
		h.logSubmitFailure(ctx, requestID, err)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, fromResult(result))
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	screeningID, err := id.ParseScreeningID(chi.URLParam(r, "screeningID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.screening.GetStatus(ctx, screeningID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to load screening",
				"request_id", requestcontext.RequestID(ctx),
				"screening_id", screeningID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromResult(result))
}

func (h *Handler) handleGetByKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := id.ParseTenantID(r.URL.Query().Get("tenantId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	apartmentID, err := id.ParseApartmentID(r.URL.Query().Get("apartmentId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.screening.GetStatusByKey(ctx, tenantID, apartmentID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to load screening by key",
				"request_id", requestcontext.RequestID(ctx),
				"tenant_id", tenantID,
				"apartment_id", apartmentID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromResult(result))
}

func (h *Handler) logSubmitFailure(ctx context.Context, requestID string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeMissingConsent, dErrors.CodeInvalidInput:
		h.logger.WarnContext(ctx, "screening submission rejected",
			"request_id", requestID,
			"error", err,
		)
	default:
		h.logger.ErrorContext(ctx, "screening submission failed",
			"request_id", requestID,
			"error", err,
		)
	}
}

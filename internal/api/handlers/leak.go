package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/theshadowable/iws-sh/internal/api/dto"
	"github.com/theshadowable/iws-sh/internal/api/middleware"
	"github.com/theshadowable/iws-sh/internal/domain/leak"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/utils"
	"github.com/theshadowable/iws-sh/internal/pkg/validator"
)

type LeakHandler struct {
	service   leak.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewLeakHandler(service leak.Service, log *logger.Logger, val *validator.Validator) *LeakHandler {
	return &LeakHandler{service: service, logger: log, validator: val}
}

// List returns leak events with pagination and filtering
func (h *LeakHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)
	params := utils.ParsePaginationParams(r)

	filter := leak.Filter{
		CustomerID: customerID,
		DeviceID:   r.URL.Query().Get("device_id"),
		Severity:   r.URL.Query().Get("severity"),
	}
	if v := r.URL.Query().Get("resolved"); v != "" {
		resolved, err := strconv.ParseBool(v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid resolved filter"))
			return
		}
		filter.Resolved = &resolved
	}

	events, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to list leak events", err))
		return
	}

	dtos := make([]dto.LeakEventDTO, len(events))
	for i, e := range events {
		dtos[i] = toLeakEventDTO(e)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}

// Get returns a single leak event by ID
func (h *LeakHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)
	id := chi.URLParam(r, "id")

	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get leak event")
		return
	}
	if e.CustomerID != customerID {
		utils.WriteError(w, errors.NotFound("Leak event"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toLeakEventDTO(e))
}

// Detect runs leak detection for one of the customer's devices
func (h *LeakHandler) Detect(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)

	var req dto.DetectLeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	analysis, err := h.service.DetectForDevice(r.Context(), customerID, req.DeviceID)
	if err != nil {
		writeServiceError(w, err, "Leak detection failed")
		return
	}

	if analysis == nil {
		utils.WriteSuccess(w, http.StatusOK, dto.LeakAnalysisDTO{InsufficientData: true})
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.LeakAnalysisDTO{
		LeakDetected:     analysis.LeakDetected,
		Severity:         analysis.Severity,
		AvgRate:          analysis.AvgRate,
		Baseline:         analysis.Baseline,
		EstimatedLossM3:  analysis.EstimatedLossM3,
		EstimatedCostIDR: analysis.EstimatedCostIDR,
	})
}

// Resolve marks a leak event as resolved
func (h *LeakHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ResolveLeakRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
	}

	if err := h.service.Resolve(r.Context(), id, req.Notes); err != nil {
		writeServiceError(w, err, "Failed to resolve leak event")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Leak event resolved", nil)
}

func toLeakEventDTO(e *leak.Event) dto.LeakEventDTO {
	return dto.LeakEventDTO{
		ID:               e.ID,
		DeviceID:         e.DeviceID,
		CustomerID:       e.CustomerID,
		DetectedAt:       e.DetectedAt,
		ConsumptionRate:  e.ConsumptionRate,
		NormalRate:       e.NormalRate,
		Severity:         e.Severity,
		DurationMinutes:  e.DurationMinutes,
		EstimatedLossM3:  e.EstimatedLossM3,
		EstimatedCostIDR: e.EstimatedCostIDR,
		Resolved:         e.Resolved,
		ResolvedAt:       e.ResolvedAt,
		Notes:            e.Notes,
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theshadowable/iws-sh/internal/api/dto"
	"github.com/theshadowable/iws-sh/internal/api/middleware"
	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/utils"
	"github.com/theshadowable/iws-sh/internal/pkg/validator"
)

type AlertHandler struct {
	service   alert.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAlertHandler(service alert.Service, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{service: service, logger: log, validator: val}
}

// List returns the authenticated customer's alerts with pagination and filtering
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)
	params := utils.ParsePaginationParams(r)

	filter := alert.Filter{
		CustomerID: customerID,
		Type:       r.URL.Query().Get("type"),
		Severity:   r.URL.Query().Get("severity"),
		Status:     r.URL.Query().Get("status"),
	}

	alerts, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to list alerts", err))
		return
	}

	dtos := make([]dto.AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = toAlertDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}

// Get returns a single alert by ID
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)
	id := chi.URLParam(r, "id")

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get alert")
		return
	}

	if a.CustomerID != customerID {
		utils.WriteError(w, errors.NotFound("Alert"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAlertDTO(a))
}

// UpdateStatus updates an alert's status (read, dismissed, resolved)
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)
	id := chi.URLParam(r, "id")

	var req dto.UpdateAlertStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get alert")
		return
	}
	if a.CustomerID != customerID {
		utils.WriteError(w, errors.NotFound("Alert"))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, err, "Failed to update alert status")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Alert status updated", nil)
}

// GetSummary returns the customer's alert counts by status
func (h *AlertHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)

	summary, err := h.service.GetSummary(r.Context(), customerID)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to get alert summary", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

func toAlertDTO(a *alert.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Type:       a.Type,
		Severity:   a.Severity,
		Title:      a.Title,
		Message:    a.Message,
		Status:     a.Status,
		Metadata:   a.Metadata,
		CreatedAt:  a.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}

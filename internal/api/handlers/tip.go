package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theshadowable/iws-sh/internal/api/dto"
	"github.com/theshadowable/iws-sh/internal/api/middleware"
	"github.com/theshadowable/iws-sh/internal/domain/tip"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/utils"
)

type TipHandler struct {
	service tip.Service
	logger  *logger.Logger
}

func NewTipHandler(service tip.Service, log *logger.Logger) *TipHandler {
	return &TipHandler{service: service, logger: log}
}

// List returns the customer's water saving tips
func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)

	tips, err := h.service.List(r.Context(), customerID)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to list tips", err))
		return
	}

	dtos := make([]dto.TipDTO, len(tips))
	for i, t := range tips {
		dtos[i] = toTipDTO(t)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Generate runs tip generation against the customer's recent usage
func (h *TipHandler) Generate(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)

	tips, err := h.service.GenerateForCustomer(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, "Tip generation failed")
		return
	}

	dtos := make([]dto.TipDTO, len(tips))
	for i, t := range tips {
		dtos[i] = toTipDTO(t)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// MarkViewed marks a tip as viewed
func (h *TipHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.MarkViewed(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to mark tip viewed")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Tip marked as viewed", nil)
}

func toTipDTO(t *tip.Tip) dto.TipDTO {
	return dto.TipDTO{
		ID:                  t.ID,
		CustomerID:          t.CustomerID,
		Category:            t.Category,
		Title:               t.Title,
		Description:         t.Description,
		PotentialSavingsPct: t.PotentialSavingsPct,
		Priority:            t.Priority,
		GeneratedAt:         t.GeneratedAt,
		Viewed:              t.Viewed,
		Applied:             t.Applied,
	}
}

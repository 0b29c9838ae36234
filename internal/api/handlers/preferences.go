package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/theshadowable/iws-sh/internal/api/dto"
	"github.com/theshadowable/iws-sh/internal/api/middleware"
	"github.com/theshadowable/iws-sh/internal/domain/preferences"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/utils"
	"github.com/theshadowable/iws-sh/internal/pkg/validator"
)

type PreferencesHandler struct {
	repo             preferences.Repository
	defaultThreshold float64
	logger           *logger.Logger
	validator        *validator.Validator
}

func NewPreferencesHandler(repo preferences.Repository, defaultThreshold float64, log *logger.Logger, val *validator.Validator) *PreferencesHandler {
	return &PreferencesHandler{
		repo:             repo,
		defaultThreshold: defaultThreshold,
		logger:           log,
		validator:        val,
	}
}

// Get returns the customer's alert preferences. Customers who never
// configured anything get the defaults.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)

	p, err := h.repo.GetByCustomer(r.Context(), customerID)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to get preferences", err))
		return
	}

	if p == nil {
		p = &preferences.Preferences{
			CustomerID:           customerID,
			LowBalanceEnabled:    true,
			LowBalanceThreshold:  h.defaultThreshold,
			LeakDetectionEnabled: true,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, toPreferencesDTO(p))
}

// Update replaces the customer's alert preferences
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetCustomerID(r)

	var req dto.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	p, err := h.repo.GetByCustomer(r.Context(), customerID)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to get preferences", err))
		return
	}
	if p == nil {
		p = &preferences.Preferences{
			ID:         uuid.New().String(),
			CustomerID: customerID,
		}
	}

	p.LowBalanceEnabled = req.LowBalanceEnabled
	p.LowBalanceThreshold = req.LowBalanceThreshold
	p.LeakDetectionEnabled = req.LeakDetectionEnabled
	if p.LowBalanceThreshold == 0 {
		p.LowBalanceThreshold = h.defaultThreshold
	}

	if err := h.repo.Upsert(r.Context(), p); err != nil {
		utils.WriteError(w, errors.Internal("Failed to save preferences", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toPreferencesDTO(p))
}

func toPreferencesDTO(p *preferences.Preferences) dto.PreferencesDTO {
	return dto.PreferencesDTO{
		CustomerID:           p.CustomerID,
		LowBalanceEnabled:    p.LowBalanceEnabled,
		LowBalanceThreshold:  p.LowBalanceThreshold,
		LeakDetectionEnabled: p.LeakDetectionEnabled,
	}
}

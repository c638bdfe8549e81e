package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mvaldes/digital-toolkit/internal/middleware"
	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/prefs"
	"github.com/mvaldes/digital-toolkit/internal/validation"
)

// PreferenceHandler reads and writes the per-owner UI preferences that
// survive a session (only the sort key today; everything else resets).
type PreferenceHandler struct {
	prefs *prefs.Store
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(prefStore *prefs.Store) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefStore}
}

// RegisterRoutes registers preference routes on the given router
func (h *PreferenceHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sort", h.GetSort).Methods("GET")
	r.HandleFunc("/sort", h.SetSort).Methods("PUT")
}

// SortPreference is the persisted sort preference payload
type SortPreference struct {
	SortKey string `json:"sort_key" validate:"required,sort_key"`
}

// GetSort returns the owner's persisted sort key, defaulting when unset
func (h *PreferenceHandler) GetSort(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	key, err := h.prefs.GetSortKey(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to read preference")
		return
	}

	respondJSON(w, http.StatusOK, SortPreference{SortKey: string(key)})
}

// SetSort persists the owner's sort key
func (h *PreferenceHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req SortPreference
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.ValidateSortKey(req.SortKey); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	if err := h.prefs.SetSortKey(r.Context(), user.ID, models.SortKey(req.SortKey)); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save preference")
		return
	}

	respondJSON(w, http.StatusOK, req)
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/middleware"
	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/prefs"
	"github.com/mvaldes/digital-toolkit/internal/store"
	"github.com/mvaldes/digital-toolkit/internal/validation"
	"github.com/mvaldes/digital-toolkit/internal/view"
)

// ToolHandler handles tool collection requests
type ToolHandler struct {
	stores *store.Manager
	prefs  *prefs.Store
	logger *zap.Logger
}

// NewToolHandler creates a new tool handler
func NewToolHandler(stores *store.Manager, prefStore *prefs.Store, logger *zap.Logger) *ToolHandler {
	return &ToolHandler{stores: stores, prefs: prefStore, logger: logger}
}

// RegisterRoutes registers tool routes on the given router.
// The router should already carry the /tools prefix.
func (h *ToolHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTools).Methods("GET")
	r.HandleFunc("", h.CreateTool).Methods("POST")
	r.HandleFunc("/{id}", h.UpdateTool).Methods("PUT")
	r.HandleFunc("/{id}", h.DeleteTool).Methods("DELETE")
	r.HandleFunc("/{id}/favorite", h.ToggleFavorite).Methods("POST")
}

// ToolRequest carries the user-editable fields for create and update
type ToolRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,max=2000"`
	WebsiteURL  string   `json:"website_url" validate:"required,url"`
	Category    string   `json:"category" validate:"required,max=100"`
	Tags        []string `json:"tags" validate:"max=50,dive,min=1,max=50"`
	Notes       *string  `json:"notes,omitempty" validate:"omitempty,max=5000"`
	IsFavorite  bool     `json:"is_favorite"`
}

// ListTools returns the owner's collection shaped for the requested view:
// a flat sorted list for grid/table, ordered category groups for the
// category view, plus the derived category/tag indexes.
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	query := r.URL.Query()

	mode := models.DefaultViewMode
	if v := query.Get("view"); v != "" {
		if err := validation.ValidateViewMode(v); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		mode = models.ViewMode(v)
	}

	// Sort defaults to the owner's persisted preference; an explicit query
	// param wins for this request without touching the preference.
	sortKey, err := h.prefs.GetSortKey(ctx, user.ID)
	if err != nil {
		h.logger.Warn("failed_to_read_sort_preference", zap.Error(err))
		sortKey = models.DefaultSortKey
	}
	if s := query.Get("sort"); s != "" {
		if err := validation.ValidateSortKey(s); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		sortKey = models.SortKey(s)
	}

	filters := models.FilterState{
		Search:            validation.SanitizeText(query.Get("search")),
		Category:          query.Get("category"),
		ShowFavoritesOnly: query.Get("favorites") == "true",
	}
	if tags := query.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filters.Tags = append(filters.Tags, trimmed)
			}
		}
	}

	s, err := h.stores.ForUser(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	state := view.NewState(sortKey).SelectMode(mode).SetFilters(filters)
	respondJSON(w, http.StatusOK, view.Render(state, s.Snapshot()))
}

// CreateTool creates a new tool
func (h *ToolHandler) CreateTool(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	fields, ok := h.decodeToolRequest(w, r)
	if !ok {
		return
	}

	s, err := h.stores.ForUser(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	tool, err := s.Create(r.Context(), *fields)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create tool")
		return
	}

	respondJSON(w, http.StatusCreated, tool)
}

// UpdateTool replaces the full editable field set of an existing tool
func (h *ToolHandler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid tool ID")
		return
	}

	fields, ok := h.decodeToolRequest(w, r)
	if !ok {
		return
	}

	s, err := h.stores.ForUser(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	tool, err := s.Update(r.Context(), id, *fields)
	if err != nil {
		// A concurrently deleted record surfaces here as a no-rows result
		// from the repository; the next full load resyncs local state.
		// Anything else is a persistence failure, not a missing record.
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Tool not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update tool")
		return
	}

	respondJSON(w, http.StatusOK, tool)
}

// DeleteTool deletes a tool. The caller must pass confirm=true, mirroring
// the blocking confirmation the UI shows before a destructive action.
func (h *ToolHandler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid tool ID")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Deletion requires confirm=true")
		return
	}

	s, err := h.stores.ForUser(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	if err := s.Delete(r.Context(), id); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete tool")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite flips the favorite flag of a tool
func (h *ToolHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid tool ID")
		return
	}

	s, err := h.stores.ForUser(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	tool, err := s.ToggleFavorite(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update favorite")
		return
	}
	if tool == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Tool not found")
		return
	}

	respondJSON(w, http.StatusOK, tool)
}

// decodeToolRequest decodes, validates, and sanitizes a tool payload. On
// failure it writes the error response and returns ok=false.
func (h *ToolHandler) decodeToolRequest(w http.ResponseWriter, r *http.Request) (*models.ToolFields, bool) {
	var req ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return nil, false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return nil, false
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return nil, false
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return nil, false
	}

	fields := &models.ToolFields{
		Name:        validation.SanitizeText(req.Name),
		Description: validation.SanitizeText(req.Description),
		WebsiteURL:  strings.TrimSpace(req.WebsiteURL),
		Category:    validation.SanitizeText(req.Category),
		Tags:        validation.SanitizeTags(req.Tags),
		IsFavorite:  req.IsFavorite,
	}
	if req.Notes != nil {
		notes := validation.SanitizeText(*req.Notes)
		if notes != "" {
			fields.Notes = &notes
		}
	}

	if fields.Name == "" || fields.Category == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name and category cannot be empty after sanitization")
		return nil, false
	}

	return fields, true
}

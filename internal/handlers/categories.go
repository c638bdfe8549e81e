package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/icons"
	"github.com/mvaldes/digital-toolkit/internal/middleware"
	"github.com/mvaldes/digital-toolkit/internal/store"
	"github.com/mvaldes/digital-toolkit/internal/toolset"
)

// CategoryHandler serves the derived category and tag indexes. Categories
// are enriched with display metadata when the side table has any; metadata
// never decides which categories exist.
type CategoryHandler struct {
	stores   *store.Manager
	metaRepo database.CategoryMetaRepositoryInterface
	resolver icons.Resolver
	logger   *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(stores *store.Manager, metaRepo database.CategoryMetaRepositoryInterface, resolver icons.Resolver, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{stores: stores, metaRepo: metaRepo, resolver: resolver, logger: logger}
}

// RegisterRoutes registers the index routes on the given router
func (h *CategoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/tags", h.ListTags).Methods("GET")
}

// CategoryEntry is one derived category with its display enrichment
type CategoryEntry struct {
	Name  string     `json:"name"`
	Icon  icons.Icon `json:"icon"`
	Color *string    `json:"color,omitempty"`
}

// ListCategories returns the distinct categories in the owner's collection,
// sorted, with icon/color enrichment where metadata exists.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	s, err := h.stores.ForUser(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	metaByName := make(map[string]struct {
		icon  string
		color *string
	})
	if h.metaRepo != nil {
		metas, err := h.metaRepo.GetAll(ctx)
		if err != nil {
			// Enrichment is optional; serve the bare index on failure.
			h.logger.Warn("failed_to_load_category_metadata", zap.Error(err))
		} else {
			for _, meta := range metas {
				metaByName[meta.Name] = struct {
					icon  string
					color *string
				}{meta.Icon, meta.Color}
			}
		}
	}

	names := toolset.Categories(s.Snapshot())
	entries := make([]CategoryEntry, 0, len(names))
	for _, name := range names {
		entry := CategoryEntry{Name: name, Icon: icons.FallbackIcon}
		if meta, ok := metaByName[name]; ok {
			entry.Icon = h.resolver.Resolve(meta.icon)
			entry.Color = meta.color
		}
		entries = append(entries, entry)
	}

	respondJSON(w, http.StatusOK, entries)
}

// ListTags returns the distinct tags across the owner's collection, sorted.
func (h *CategoryHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	s, err := h.stores.ForUser(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tools")
		return
	}

	respondJSON(w, http.StatusOK, toolset.Tags(s.Snapshot()))
}

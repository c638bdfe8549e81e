package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mvaldes/digital-toolkit/internal/middleware"
	"github.com/mvaldes/digital-toolkit/internal/services/oidc"
	"github.com/mvaldes/digital-toolkit/internal/store"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	client   *oidc.Client
	issuer   string
	clientID string
	stores   *store.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *oidc.Client, issuer, clientID string, stores *store.Manager) *AuthHandler {
	return &AuthHandler{client: client, issuer: issuer, clientID: clientID, stores: stores}
}

// RegisterPublicRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/oidc/login", h.GetOIDCLogin).Methods("GET")
}

// RegisterProtectedRoutes registers the authenticated auth routes
func (h *AuthHandler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/me", h.GetMe).Methods("GET")
	r.HandleFunc("/logout", h.Logout).Methods("POST")
}

// GetOIDCLogin returns the provider login configuration for the frontend
func (h *AuthHandler) GetOIDCLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	respondJSON(w, http.StatusOK, oidc.LoginConfigFor(h.issuer, h.clientID, h.client, state))
}

// GetMe returns the current user
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout discards the owner's cached collection. Token invalidation itself
// belongs to the identity provider; the server only drops per-owner state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	h.stores.Evict(user.ID)
	w.WriteHeader(http.StatusNoContent)
}

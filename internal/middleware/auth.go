package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/request"
	"github.com/mvaldes/digital-toolkit/internal/services/oidc"
)

// Auth verifies the bearer token on every request and attaches the matching
// user to the request context. Users are provisioned on first sight of a
// verified token, and profile fields are kept in sync with the claims.
func Auth(userRepo database.UserRepositoryInterface, verifier *oidc.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondAuthError(w, "Missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				respondAuthError(w, "Invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				logger.Warn("token_verification_failed", zap.Error(err))
				respondAuthError(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.GetByProviderID(r.Context(), claims.Sub)
			if err != nil {
				user = &models.User{
					ID:            uuid.New(),
					Email:         claims.Email,
					ProviderID:    &claims.Sub,
					EmailVerified: true,
				}
				if claims.Name != "" {
					user.Name = &claims.Name
				}
				if err := userRepo.Create(r.Context(), user); err != nil {
					logger.Error("failed_to_provision_user", zap.Error(err))
					respondAuthError(w, "Failed to provision user")
					return
				}
				logger.Info("user_provisioned", zap.String("user_id", user.ID.String()))
			} else if syncProfile(user, claims) {
				if err := userRepo.Update(r.Context(), user); err != nil {
					logger.Warn("failed_to_sync_user_profile",
						zap.String("user_id", user.ID.String()),
						zap.Error(err),
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(request.WithUser(r.Context(), user)))
		})
	}
}

// syncProfile applies claim changes to the stored user, reporting whether
// anything changed.
func syncProfile(user *models.User, claims *models.JWTClaims) bool {
	changed := false
	if claims.Email != "" && user.Email != claims.Email {
		user.Email = claims.Email
		changed = true
	}
	if claims.Name != "" && (user.Name == nil || *user.Name != claims.Name) {
		user.Name = &claims.Name
		changed = true
	}
	return changed
}

func respondAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := map[string]any{
		"success":   false,
		"error":     "Unauthorized",
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		_ = err
	}
}

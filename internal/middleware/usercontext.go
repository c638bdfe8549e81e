package middleware

import (
	"net/http"

	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/request"
)

// UserFromContext returns the authenticated user attached by Auth, or nil.
func UserFromContext(r *http.Request) *models.User {
	return request.UserFromContext(r)
}

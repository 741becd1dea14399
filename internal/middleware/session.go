package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/service"
)

// Resumer restarts background work for a user whose session is still valid.
type Resumer interface {
	Resume(userID int64)
}

// CheckSingleDeviceSession validates the JWT's id against the stored session.
// A mismatch means the user logged in elsewhere or the session was torn down.
// Valid sessions resume their background refresh loop, which restores
// loops lost in a server restart on the first request.
func CheckSingleDeviceSession(authService *service.AuthService, resumer Resumer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		err := authService.ValidateSession(c.Request.Context(), claims.UserID, claims.ID)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrSessionInvalidated):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		default:
			_ = c.Error(err)
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		if resumer != nil {
			resumer.Resume(claims.UserID)
		}
		c.Next()
	}
}

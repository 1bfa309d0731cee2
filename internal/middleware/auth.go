package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/internal/utils"
	"github.com/huangang/teamboard/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextActor  = "actor"
)

// SessionSource exposes the state of the dashboard session requests act on.
type SessionSource interface {
	State() state.State
}

// SessionRequired checks the bearer token and that it was issued to the
// session's signed-in user (the original admin while impersonating). The
// acting user and its role are put in the context.
func SessionRequired(src SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, msg := bearerToken(c)
		if token == "" {
			response.Unauthorized(c, msg)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		auth := src.State().Auth
		signedIn := auth.User
		if auth.OriginalUser != nil {
			signedIn = auth.OriginalUser
		}
		if signedIn == nil || signedIn.ID != claims.UserID {
			response.Unauthorized(c, "session expired")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, string(auth.User.Role))
		c.Set(ContextActor, models.ClonePtr(auth.User))

		c.Next()
	}
}

// bearerToken reads the Authorization header. Event streams cannot set
// headers, so a token query parameter is accepted when the header is absent.
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, ""
		}
		return "", "authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "invalid authorization header format"
	}
	return parts[1], ""
}

// AdminRequired lets only an acting admin through.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != string(models.RoleAdmin) {
			response.Forbidden(c, "admin access required")
			return
		}
		c.Next()
	}
}

// GetUserID returns the id the session token was issued to.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func GetEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

// GetRole returns the acting user's role.
func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

// GetActor returns the user requests currently act as, or nil.
func GetActor(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextActor); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

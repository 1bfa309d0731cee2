package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/middleware"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/policy"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/internal/utils"
	"github.com/huangang/teamboard/pkg/response"
)

type AuthHandler struct {
	session    *state.Session
	expireHour int
}

func NewAuthHandler(session *state.Session, expireHour int) *AuthHandler {
	return &AuthHandler{session: session, expireHour: expireHour}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token        string       `json:"token,omitempty"`
	User         *models.User `json:"user"`
	OriginalUser *models.User `json:"originalUser"`
	LandingRoute string       `json:"landingRoute,omitempty"`
}

func sessionView(auth state.AuthState) SessionResponse {
	resp := SessionResponse{}
	if auth.User != nil {
		u := auth.User.Public()
		resp.User = &u
		resp.LandingRoute = policy.LandingRoute(u.Role)
	}
	if auth.OriginalUser != nil {
		u := auth.OriginalUser.Public()
		resp.OriginalUser = &u
	}
	return resp
}

// Login signs the session in and loads its data.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.session.Refresh(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), h.expireHour)
	if err != nil {
		response.ServerError(c, "failed to issue session token")
		return
	}

	resp := sessionView(h.session.State().Auth)
	resp.Token = token
	response.Success(c, resp)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "logged out"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, sessionView(h.session.State().Auth))
}

// Impersonate lets an admin browse as another user.
// POST /api/auth/impersonate/:id
func (h *AuthHandler) Impersonate(c *gin.Context) {
	if _, err := h.session.Impersonate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, sessionView(h.session.State().Auth))
}

// POST /api/auth/stop-impersonation
func (h *AuthHandler) StopImpersonation(c *gin.Context) {
	if err := h.session.StopImpersonation(); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, sessionView(h.session.State().Auth))
}

// actor is the user the request acts as. SessionRequired guarantees it.
func actor(c *gin.Context) *models.User {
	return middleware.GetActor(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/pkg/response"
)

type UserHandler struct {
	session *state.Session
}

func NewUserHandler(session *state.Session) *UserHandler {
	return &UserHandler{session: session}
}

func publicUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.session.FetchUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, publicUsers(users))
}

type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !req.Role.Valid() {
		response.BadRequest(c, "invalid role")
		return
	}

	user, err := h.session.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user.Public())
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/pkg/response"
)

type SystemLogHandler struct {
	systemLogService *services.SystemLogService
}

func NewSystemLogHandler(svc *services.SystemLogService) *SystemLogHandler {
	return &SystemLogHandler{systemLogService: svc}
}

// GET /api/audit-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.systemLogService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

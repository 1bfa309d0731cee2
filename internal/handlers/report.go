package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/pkg/response"
)

type ReportHandler struct {
	session *state.Session
}

func NewReportHandler(session *state.Session) *ReportHandler {
	return &ReportHandler{session: session}
}

// Get fetches a fresh snapshot and returns the aggregated report.
// GET /api/reports
func (h *ReportHandler) Get(c *gin.Context) {
	if _, err := h.session.FetchReports(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	report, ok := h.session.State().Report()
	if !ok {
		response.ServerError(c, "report unavailable")
		return
	}
	response.Success(c, report)
}

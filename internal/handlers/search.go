package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/internal/views"
	"github.com/huangang/teamboard/pkg/response"
)

// SearchHandler runs a free-text query across the projects and tasks the
// acting user can see.
type SearchHandler struct {
	session *state.Session
}

func NewSearchHandler(session *state.Session) *SearchHandler {
	return &SearchHandler{session: session}
}

type SearchResult struct {
	Projects []views.ProjectRow `json:"projects"`
	Tasks    []views.TaskRow    `json:"tasks"`
	Total    int                `json:"total"`
}

// GET /api/search?q=
func (h *SearchHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.BadRequest(c, "q is required")
		return
	}

	st := h.session.State()
	now := h.session.Now()
	result := SearchResult{
		Projects: st.ProjectRows(views.ProjectFilter{Search: q}, now),
		Tasks:    st.TaskRows(views.TaskFilter{Search: q}, now),
	}
	result.Total = len(result.Projects) + len(result.Tasks)
	response.Success(c, result)
}

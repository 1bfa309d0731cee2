package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/policy"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/internal/views"
	"github.com/huangang/teamboard/pkg/response"
)

type TeamHandler struct {
	session *state.Session
}

func NewTeamHandler(session *state.Session) *TeamHandler {
	return &TeamHandler{session: session}
}

// TeamResponse carries only the task rows the acting user may see.
// Stats and CompletedByMember count every task of the project.
type TeamResponse struct {
	Project           models.Project     `json:"project"`
	Members           []models.User      `json:"members"`
	Tasks             []views.TaskRow    `json:"tasks"`
	Stats             services.TeamStats `json:"stats"`
	CompletedByMember map[string]int     `json:"completedByMember"`
	CanManage         bool               `json:"canManage"`
}

// List returns the projects whose team the acting user can open.
// GET /api/teams
func (h *TeamHandler) List(c *gin.Context) {
	response.Success(c, views.AccessibleTeams(h.session.State().Projects.Items, actor(c)))
}

// GET /api/teams/:projectId
func (h *TeamHandler) Get(c *gin.Context) {
	u := actor(c)
	projectID := c.Param("projectId")

	team, err := h.session.FetchTeam(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	if !policy.ProjectVisibility(team.Project, u).Visible {
		response.NotFound(c, "Team not found")
		return
	}

	response.Success(c, TeamResponse{
		Project:           team.Project,
		Members:           publicUsers(team.Members),
		Tasks:             views.EnhanceTasks(team.Tasks, []models.Project{team.Project}, team.Members, u),
		Stats:             team.Stats,
		CompletedByMember: views.CompletedByMember(team.Tasks, projectID),
		CanManage:         policy.CanManageTeam(team.Project, u),
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/policy"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/pkg/response"
)

type ProjectHandler struct {
	session *state.Session
}

func NewProjectHandler(session *state.Session) *ProjectHandler {
	return &ProjectHandler{session: session}
}

// List returns the visible projects, filtered and sorted by due date.
// Query parameters override the stored filters for this request only.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	if _, err := h.session.FetchProjects(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}

	st := h.session.State()
	filter := st.ProjectFilter()
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !filter.DueDate.Valid() {
		response.BadRequest(c, "invalid dueDate filter")
		return
	}
	response.Success(c, st.ProjectRows(filter, h.session.Now()))
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	u := actor(c)
	if !policy.CanCreateProject(u) {
		response.Forbidden(c, "not allowed to create projects")
		return
	}

	var req models.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Name == "" {
		response.BadRequest(c, "name is required")
		return
	}
	if req.ProjectManagerID == "" && u.Role == models.RoleProjectManager {
		req.ProjectManagerID = u.ID
	}

	project, err := h.session.CreateProject(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, project)
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	project, ok := h.lookup(c)
	if !ok {
		return
	}
	if !policy.ProjectVisibility(project, actor(c)).Editable {
		response.Forbidden(c, "not allowed to edit this project")
		return
	}

	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.session.UpdateProject(c.Request.Context(), project.ID, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, updated)
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	project, ok := h.lookup(c)
	if !ok {
		return
	}
	if !policy.ProjectVisibility(project, actor(c)).Deletable {
		response.Forbidden(c, "not allowed to delete this project")
		return
	}

	if err := h.session.DeleteProject(c.Request.Context(), project.ID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": project.ID})
}

type AssignMembersRequest struct {
	MemberIDs []string `json:"memberIds"`
}

// PUT /api/projects/:id/members
func (h *ProjectHandler) AssignMembers(c *gin.Context) {
	project, ok := h.lookup(c)
	if !ok {
		return
	}
	if !policy.CanManageTeam(project, actor(c)) {
		response.Forbidden(c, "not allowed to manage this team")
		return
	}

	var req AssignMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.session.AssignMembers(c.Request.Context(), project.ID, req.MemberIDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, updated)
}

// lookup finds the :id project among those the acting user can see and
// writes a 404 otherwise.
func (h *ProjectHandler) lookup(c *gin.Context) (models.Project, bool) {
	id := c.Param("id")
	u := actor(c)
	for _, p := range h.session.State().Projects.Items {
		if p.ID == id && policy.ProjectVisibility(p, u).Visible {
			return p, true
		}
	}
	response.NotFound(c, "Project not found")
	return models.Project{}, false
}

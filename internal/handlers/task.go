package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/policy"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/internal/views"
	"github.com/huangang/teamboard/pkg/response"
)

type TaskHandler struct {
	session *state.Session
}

func NewTaskHandler(session *state.Session) *TaskHandler {
	return &TaskHandler{session: session}
}

// rows refreshes the task list and returns the visible, filtered rows.
func (h *TaskHandler) rows(c *gin.Context) ([]views.TaskRow, bool) {
	if _, err := h.session.FetchTasks(c.Request.Context()); err != nil {
		fail(c, err)
		return nil, false
	}

	st := h.session.State()
	filter := st.TaskFilter()
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	if !filter.DueDate.Valid() {
		response.BadRequest(c, "invalid dueDate filter")
		return nil, false
	}
	return st.TaskRows(filter, h.session.Now()), true
}

// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}
	response.Success(c, rows)
}

// Board groups the visible tasks into the four status columns.
// GET /api/tasks/board
func (h *TaskHandler) Board(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}
	response.Success(c, views.GroupBoard(rows))
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Title == "" || req.ProjectID == "" {
		response.BadRequest(c, "title and projectId are required")
		return
	}

	var project *models.Project
	st := h.session.State()
	for i := range st.Projects.Items {
		if st.Projects.Items[i].ID == req.ProjectID {
			project = &st.Projects.Items[i]
			break
		}
	}
	if !policy.CanCreateTask(project, actor(c)) {
		response.Forbidden(c, "not allowed to add tasks to this project")
		return
	}

	task, err := h.session.CreateTask(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, task)
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	row, ok := h.lookup(c)
	if !ok {
		return
	}

	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// the assignee may only change status
	if !row.Editable && !(row.Draggable && patch.StatusOnly()) {
		response.Forbidden(c, "not allowed to edit this task")
		return
	}

	task, err := h.session.UpdateTask(c.Request.Context(), row.ID, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, task)
}

type MoveTaskRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// UpdateStatus moves a task between board columns.
// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !req.Status.Valid() {
		response.BadRequest(c, "invalid status")
		return
	}

	task, err := h.session.MoveTask(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, task)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	row, ok := h.lookup(c)
	if !ok {
		return
	}
	if !row.Deletable {
		response.Forbidden(c, "not allowed to delete this task")
		return
	}

	if err := h.session.DeleteTask(c.Request.Context(), row.ID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": row.ID})
}

// lookup resolves :id among the tasks the acting user can see. Hidden
// tasks answer 404 like missing ones.
func (h *TaskHandler) lookup(c *gin.Context) (views.TaskRow, bool) {
	st := h.session.State()
	id := c.Param("id")
	for _, r := range views.EnhanceTasks(st.Tasks.Items, st.Projects.Items, st.Users.Items, actor(c)) {
		if r.ID == id {
			return r, true
		}
	}
	response.NotFound(c, "Task not found")
	return views.TaskRow{}, false
}

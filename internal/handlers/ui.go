package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/pkg/response"
)

// UIHandler exposes the ui slice and the stored list filters.
type UIHandler struct {
	session *state.Session
}

func NewUIHandler(session *state.Session) *UIHandler {
	return &UIHandler{session: session}
}

type uiResponse struct {
	state.UIState
	ProjectFilters state.ProjectFilters `json:"projectFilters"`
	TaskFilters    state.TaskFilters    `json:"taskFilters"`
}

func (h *UIHandler) current(c *gin.Context) {
	st := h.session.State()
	response.Success(c, uiResponse{
		UIState:        st.UI,
		ProjectFilters: st.Projects.Filters,
		TaskFilters:    st.Tasks.Filters,
	})
}

func (h *UIHandler) apply(c *gin.Context, a state.Action) {
	if err := h.session.Dispatch(a); err != nil {
		fail(c, err)
		return
	}
	h.current(c)
}

// GET /api/ui
func (h *UIHandler) Get(c *gin.Context) { h.current(c) }

type ThemeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme sets the theme, or toggles it when no theme is given.
// PUT /api/ui/theme
func (h *UIHandler) SetTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	switch req.Theme {
	case "":
		h.apply(c, state.ToggleTheme())
	case "light", "dark":
		h.apply(c, state.SetTheme(req.Theme))
	default:
		response.BadRequest(c, "theme must be light or dark")
	}
}

// POST /api/ui/sidebar/toggle
func (h *UIHandler) ToggleSidebar(c *gin.Context) {
	h.apply(c, state.ToggleSidebar())
}

type SearchRequest struct {
	Query string `json:"query"`
}

// PUT /api/ui/search
func (h *UIHandler) SetSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.apply(c, state.SetGlobalSearch(req.Query))
}

// PUT /api/ui/filters/projects
func (h *UIHandler) SetProjectFilter(c *gin.Context) {
	var patch state.ProjectFilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if patch.DueDate != nil && !patch.DueDate.Valid() {
		response.BadRequest(c, "invalid dueDate filter")
		return
	}
	h.apply(c, state.SetProjectFilter(patch))
}

// PUT /api/ui/filters/tasks
func (h *UIHandler) SetTaskFilter(c *gin.Context) {
	var patch state.TaskFilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if patch.DueDate != nil && !patch.DueDate.Valid() {
		response.BadRequest(c, "invalid dueDate filter")
		return
	}
	h.apply(c, state.SetTaskFilter(patch))
}

type NotificationRequest struct {
	Title   string         `json:"title" binding:"required"`
	Message string         `json:"message"`
	Variant models.Variant `json:"variant"`
}

// POST /api/ui/notifications
func (h *UIHandler) PushNotification(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, h.session.Notify(req.Title, req.Message, req.Variant))
}

// DELETE /api/ui/notifications/:id
func (h *UIHandler) DismissNotification(c *gin.Context) {
	h.apply(c, state.DismissNotification(c.Param("id")))
}

// DELETE /api/ui/notifications
func (h *UIHandler) ClearNotifications(c *gin.Context) {
	h.apply(c, state.ClearNotifications())
}


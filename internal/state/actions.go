package state

import (
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/views"
)

// Phase is where an async action is in its lifecycle. Plain reducer
// actions use PhaseSync.
type Phase uint8

const (
	PhaseSync Phase = iota
	PhasePending
	PhaseFulfilled
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	}
	return ""
}

// Action is one state transition request.
type Action struct {
	Type    string
	Phase   Phase
	Payload any
	Err     error
}

func (a Action) String() string {
	if a.Phase == PhaseSync {
		return a.Type
	}
	return a.Type + "/" + a.Phase.String()
}

const (
	ActLogin             = "auth/login"
	ActImpersonate       = "auth/impersonate"
	ActStopImpersonation = "auth/stopImpersonation"
	ActLogout            = "auth/logout"
	ActRestoreSession    = "auth/restoreSession"

	ActFetchUsers = "users/fetch"
	ActUpdateRole = "users/updateRole"

	ActFetchProjects    = "projects/fetch"
	ActCreateProject    = "projects/create"
	ActUpdateProject    = "projects/update"
	ActDeleteProject    = "projects/delete"
	ActAssignMembers    = "projects/assignMembers"
	ActSetProjectFilter = "projects/setFilter"

	ActFetchTasks    = "tasks/fetch"
	ActCreateTask    = "tasks/create"
	ActUpdateTask    = "tasks/update"
	ActDeleteTask    = "tasks/delete"
	ActSetTaskFilter = "tasks/setFilter"

	ActFetchReports = "reports/fetch"

	ActToggleTheme         = "ui/toggleTheme"
	ActSetTheme            = "ui/setTheme"
	ActToggleSidebar       = "ui/toggleSidebar"
	ActSetGlobalSearch     = "ui/setGlobalSearch"
	ActPushNotification    = "ui/pushNotification"
	ActDismissNotification = "ui/dismissNotification"
	ActClearNotifications  = "ui/clearNotifications"
)

// ProjectFilterPatch merges into ProjectFilters; nil fields are kept.
type ProjectFilterPatch struct {
	Status  *string          `json:"status,omitempty"`
	DueDate *views.DueBucket `json:"dueDate,omitempty"`
	View    *string          `json:"view,omitempty"`
}

type TaskFilterPatch struct {
	Status    *string          `json:"status,omitempty"`
	Priority  *string          `json:"priority,omitempty"`
	DueDate   *views.DueBucket `json:"dueDate,omitempty"`
	View      *string          `json:"view,omitempty"`
	ProjectID *string          `json:"projectId,omitempty"`
}

func plain(typ string, payload any) Action {
	return Action{Type: typ, Phase: PhaseSync, Payload: payload}
}

func Logout() Action                      { return plain(ActLogout, nil) }
func StopImpersonation() Action           { return plain(ActStopImpersonation, nil) }
func RestoreSession(u models.User) Action { return plain(ActRestoreSession, u) }
func ToggleTheme() Action                 { return plain(ActToggleTheme, nil) }
func SetTheme(theme string) Action        { return plain(ActSetTheme, theme) }
func ToggleSidebar() Action               { return plain(ActToggleSidebar, nil) }
func SetGlobalSearch(q string) Action     { return plain(ActSetGlobalSearch, q) }
func DismissNotification(id string) Action {
	return plain(ActDismissNotification, id)
}
func ClearNotifications() Action { return plain(ActClearNotifications, nil) }

func PushNotification(n models.Notification) Action {
	return plain(ActPushNotification, n)
}

func SetProjectFilter(p ProjectFilterPatch) Action { return plain(ActSetProjectFilter, p) }
func SetTaskFilter(p TaskFilterPatch) Action       { return plain(ActSetTaskFilter, p) }

package state

import (
	"slices"

	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/views"
)

// Status tracks the last async operation a slice went through.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

type keyed interface {
	Key() string
}

// EntityState is the list-plus-status shape shared by entity slices.
type EntityState[T keyed] struct {
	Items  []T    `json:"items"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (e *EntityState[T]) pending() {
	e.Status = StatusLoading
}

func (e *EntityState[T]) fail(err error) {
	e.Status = StatusFailed
	e.Error = errMessage(err)
}

func (e *EntityState[T]) succeed() {
	e.Status = StatusSucceeded
	e.Error = ""
}

func (e *EntityState[T]) prepend(item T) {
	e.Items = slices.Insert(e.Items, 0, item)
}

// merge replaces the item with the same key. Items the slice has never
// seen are ignored.
func (e *EntityState[T]) merge(item T, combine func(old, upd T) T) {
	for i := range e.Items {
		if e.Items[i].Key() == item.Key() {
			e.Items[i] = combine(e.Items[i], item)
			return
		}
	}
}

func (e *EntityState[T]) remove(id string) {
	e.removeWhere(func(it T) bool { return it.Key() == id })
}

func (e *EntityState[T]) removeWhere(match func(T) bool) {
	e.Items = slices.DeleteFunc(e.Items, match)
}

func (e EntityState[T]) clone(cloneItem func(T) T) EntityState[T] {
	out := e
	if e.Items != nil {
		out.Items = make([]T, len(e.Items))
		for i, it := range e.Items {
			out.Items[i] = cloneItem(it)
		}
	}
	return out
}

type AuthState struct {
	User         *models.User `json:"user"`
	OriginalUser *models.User `json:"originalUser"`
	Status       Status       `json:"status"`
	Error        string       `json:"error,omitempty"`
}

// Impersonating reports whether an admin is browsing as someone else.
func (a AuthState) Impersonating() bool { return a.OriginalUser != nil }

type ProjectFilters struct {
	Status  string          `json:"status"`
	DueDate views.DueBucket `json:"dueDate"`
	View    string          `json:"view"` // table or cards
}

type ProjectsState struct {
	EntityState[models.Project]
	Filters ProjectFilters `json:"filters"`
}

type TaskFilters struct {
	Status    string          `json:"status"`
	Priority  string          `json:"priority"`
	DueDate   views.DueBucket `json:"dueDate"`
	View      string          `json:"view"` // board or table
	ProjectID string          `json:"projectId"`
}

type TasksState struct {
	EntityState[models.Task]
	Filters TaskFilters `json:"filters"`
}

type ReportsState struct {
	Data   *services.ReportSnapshot `json:"data"`
	Status Status                   `json:"status"`
	Error  string                   `json:"error,omitempty"`
}

type UIState struct {
	Theme            string                `json:"theme"`
	SidebarCollapsed bool                  `json:"sidebarCollapsed"`
	GlobalSearch     string                `json:"globalSearch"`
	Notifications    []models.Notification `json:"notifications"`
}

// State is the whole session state tree.
type State struct {
	Auth     AuthState                `json:"auth"`
	Users    EntityState[models.User] `json:"users"`
	Projects ProjectsState            `json:"projects"`
	Tasks    TasksState               `json:"tasks"`
	Reports  ReportsState             `json:"reports"`
	UI       UIState                  `json:"ui"`
}

// Initial returns the state of a fresh session.
func Initial() State {
	return State{
		Auth:  AuthState{Status: StatusIdle},
		Users: EntityState[models.User]{Items: []models.User{}, Status: StatusIdle},
		Projects: ProjectsState{
			EntityState: EntityState[models.Project]{Items: []models.Project{}, Status: StatusIdle},
			Filters:     ProjectFilters{Status: "all", DueDate: views.DueAll, View: "table"},
		},
		Tasks: TasksState{
			EntityState: EntityState[models.Task]{Items: []models.Task{}, Status: StatusIdle},
			Filters:     TaskFilters{Status: "all", Priority: "all", DueDate: views.DueAll, View: "board", ProjectID: "all"},
		},
		Reports: ReportsState{Status: StatusIdle},
		UI: UIState{
			Theme:            "dark",
			SidebarCollapsed: true,
			Notifications:    []models.Notification{},
		},
	}
}

// Clone deep-copies the tree so readers never share memory with the store.
func (s State) Clone() State {
	out := s
	out.Auth.User = models.ClonePtr(s.Auth.User)
	out.Auth.OriginalUser = models.ClonePtr(s.Auth.OriginalUser)
	out.Users = s.Users.clone(func(u models.User) models.User { return u })
	out.Projects.EntityState = s.Projects.EntityState.clone(func(p models.Project) models.Project { return p.Clone() })
	out.Tasks.EntityState = s.Tasks.EntityState.clone(func(t models.Task) models.Task { return t })
	if s.Reports.Data != nil {
		d := cloneReport(*s.Reports.Data)
		out.Reports.Data = &d
	}
	out.UI.Notifications = slices.Clone(s.UI.Notifications)
	return out
}

func cloneReport(r services.ReportSnapshot) services.ReportSnapshot {
	projects := make([]models.Project, len(r.Projects))
	for i, p := range r.Projects {
		projects[i] = p.Clone()
	}
	return services.ReportSnapshot{
		Users:    slices.Clone(r.Users),
		Projects: projects,
		Tasks:    slices.Clone(r.Tasks),
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package state

import (
	"time"

	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/views"
)

// ProjectFilter combines the projects slice filters with global search.
func (s State) ProjectFilter() views.ProjectFilter {
	return views.ProjectFilter{
		Status:  s.Projects.Filters.Status,
		DueDate: s.Projects.Filters.DueDate,
		Search:  s.UI.GlobalSearch,
	}
}

// TaskFilter combines the tasks slice filters with global search.
func (s State) TaskFilter() views.TaskFilter {
	return views.TaskFilter{
		Status:    s.Tasks.Filters.Status,
		Priority:  s.Tasks.Filters.Priority,
		DueDate:   s.Tasks.Filters.DueDate,
		ProjectID: s.Tasks.Filters.ProjectID,
		Search:    s.UI.GlobalSearch,
	}
}

func (s State) ProjectRows(f views.ProjectFilter, now time.Time) []views.ProjectRow {
	return views.ProjectRows(s.Projects.Items, s.Users.Items, s.Auth.User, f, now)
}

func (s State) TaskRows(f views.TaskFilter, now time.Time) []views.TaskRow {
	return views.TaskRows(s.Tasks.Items, s.Projects.Items, s.Users.Items, s.Auth.User, f, now)
}

func (s State) Board(f views.TaskFilter, now time.Time) []views.BoardColumn {
	return views.GroupBoard(s.TaskRows(f, now))
}

// Report aggregates the last fetched report snapshot. ok is false until a
// fetch has succeeded.
func (s State) Report() (r views.Report, ok bool) {
	if s.Reports.Data == nil {
		return views.Report{}, false
	}
	d := s.Reports.Data
	return views.BuildReport(d.Users, d.Projects, d.Tasks), true
}

// Broadcast publishes every settled action to hub.
func Broadcast(hub *services.ChangeHub) Subscriber {
	return func(_ State, a Action) {
		if a.Phase == PhasePending {
			return
		}
		hub.Publish(a.String())
	}
}

package state

import (
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/services"
)

// Event is a domain fact raised by a reducer and handled by listeners in
// the same dispatch.
type Event interface {
	event()
}

// ProjectDeleted is raised once a project delete has committed.
type ProjectDeleted struct {
	ProjectID string
}

func (ProjectDeleted) event() {}

func reduceAuth(s *AuthState, a Action) {
	switch a.Type {
	case ActLogin:
		switch a.Phase {
		case PhasePending:
			s.Status, s.Error = StatusLoading, ""
		case PhaseFulfilled:
			u := a.Payload.(models.User)
			s.Status, s.Error = StatusSucceeded, ""
			s.User = &u
			s.OriginalUser = nil
		case PhaseRejected:
			s.Status, s.Error = StatusFailed, errMessage(a.Err)
		}

	case ActImpersonate:
		switch a.Phase {
		case PhasePending:
			s.Status, s.Error = StatusLoading, ""
		case PhaseFulfilled:
			u := a.Payload.(models.User)
			s.Status, s.Error = StatusSucceeded, ""
			// keep the first captured identity across repeated impersonation
			if s.OriginalUser == nil && s.User != nil {
				s.OriginalUser = models.ClonePtr(s.User)
			}
			s.User = &u
		case PhaseRejected:
			s.Status, s.Error = StatusFailed, errMessage(a.Err)
		}

	case ActStopImpersonation:
		if s.OriginalUser != nil {
			s.User = s.OriginalUser
			s.OriginalUser = nil
		}

	case ActLogout:
		*s = AuthState{Status: StatusIdle}

	case ActRestoreSession:
		u := a.Payload.(models.User)
		s.User = &u

	case ActUpdateRole:
		if a.Phase != PhaseFulfilled {
			return
		}
		u := a.Payload.(models.User)
		if s.User != nil && s.User.ID == u.ID {
			s.User.Role = u.Role
		}
		if s.OriginalUser != nil && s.OriginalUser.ID == u.ID {
			s.OriginalUser.Role = u.Role
		}
	}
}

func reduceUsers(s *EntityState[models.User], a Action) {
	switch a.Type {
	case ActFetchUsers:
		switch a.Phase {
		case PhasePending:
			s.pending()
		case PhaseFulfilled:
			s.succeed()
			s.Items = a.Payload.([]models.User)
		case PhaseRejected:
			s.fail(a.Err)
		}

	case ActUpdateRole:
		switch a.Phase {
		case PhaseFulfilled:
			s.merge(a.Payload.(models.User), func(_, upd models.User) models.User { return upd })
		case PhaseRejected:
			// a failed role change leaves the list status alone
			s.Error = errMessage(a.Err)
		}
	}
}

func replaceProject(_, upd models.Project) models.Project { return upd }

func reduceProjects(s *ProjectsState, a Action, emit func(Event)) {
	switch a.Type {
	case ActFetchProjects, ActCreateProject, ActUpdateProject, ActDeleteProject, ActAssignMembers:
		switch a.Phase {
		case PhasePending:
			s.pending()
			return
		case PhaseRejected:
			s.fail(a.Err)
			return
		case PhaseFulfilled:
			s.succeed()
		default:
			return
		}

	case ActSetProjectFilter:
		p := a.Payload.(ProjectFilterPatch)
		if p.Status != nil {
			s.Filters.Status = *p.Status
		}
		if p.DueDate != nil {
			s.Filters.DueDate = *p.DueDate
		}
		if p.View != nil {
			s.Filters.View = *p.View
		}
		return

	default:
		return
	}

	switch a.Type {
	case ActFetchProjects:
		s.Items = a.Payload.([]models.Project)
	case ActCreateProject:
		s.prepend(a.Payload.(models.Project))
	case ActUpdateProject, ActAssignMembers:
		s.merge(a.Payload.(models.Project), replaceProject)
	case ActDeleteProject:
		id := a.Payload.(string)
		s.remove(id)
		emit(ProjectDeleted{ProjectID: id})
	}
}

func reduceTasks(s *TasksState, a Action) {
	switch a.Type {
	case ActFetchTasks, ActCreateTask, ActUpdateTask:
		switch a.Phase {
		case PhasePending:
			s.pending()
		case PhaseRejected:
			s.fail(a.Err)
		case PhaseFulfilled:
			s.succeed()
			switch a.Type {
			case ActFetchTasks:
				s.Items = a.Payload.([]models.Task)
			case ActCreateTask:
				s.prepend(a.Payload.(models.Task))
			case ActUpdateTask:
				s.merge(a.Payload.(models.Task), func(_, upd models.Task) models.Task { return upd })
			}
		}

	case ActDeleteTask:
		switch a.Phase {
		case PhaseFulfilled:
			s.remove(a.Payload.(string))
		case PhaseRejected:
			s.Error = errMessage(a.Err)
		}

	case ActSetTaskFilter:
		p := a.Payload.(TaskFilterPatch)
		if p.Status != nil {
			s.Filters.Status = *p.Status
		}
		if p.Priority != nil {
			s.Filters.Priority = *p.Priority
		}
		if p.DueDate != nil {
			s.Filters.DueDate = *p.DueDate
		}
		if p.View != nil {
			s.Filters.View = *p.View
		}
		if p.ProjectID != nil {
			s.Filters.ProjectID = *p.ProjectID
		}
	}
}

// tasksOnProjectDeleted drops the tasks of a deleted project.
func tasksOnProjectDeleted(st *State, ev Event) {
	pd, ok := ev.(ProjectDeleted)
	if !ok {
		return
	}
	st.Tasks.removeWhere(func(t models.Task) bool { return t.ProjectID == pd.ProjectID })
}

func reduceReports(s *ReportsState, a Action) {
	if a.Type != ActFetchReports {
		return
	}
	switch a.Phase {
	case PhasePending:
		s.Status = StatusLoading
	case PhaseFulfilled:
		data := a.Payload.(services.ReportSnapshot)
		s.Status, s.Error = StatusSucceeded, ""
		s.Data = &data
	case PhaseRejected:
		s.Status, s.Error = StatusFailed, errMessage(a.Err)
	}
}

func reduceUI(s *UIState, a Action, limit int) {
	switch a.Type {
	case ActToggleTheme:
		if s.Theme == "dark" {
			s.Theme = "light"
		} else {
			s.Theme = "dark"
		}
	case ActSetTheme:
		if theme := a.Payload.(string); theme == "light" || theme == "dark" {
			s.Theme = theme
		}
	case ActToggleSidebar:
		s.SidebarCollapsed = !s.SidebarCollapsed
	case ActSetGlobalSearch:
		s.GlobalSearch = a.Payload.(string)
	case ActPushNotification:
		n := a.Payload.(models.Notification)
		s.Notifications = append([]models.Notification{n}, s.Notifications...)
		if len(s.Notifications) > limit {
			s.Notifications = s.Notifications[:limit]
		}
	case ActDismissNotification:
		id := a.Payload.(string)
		out := s.Notifications[:0:0]
		for _, n := range s.Notifications {
			if n.ID != id {
				out = append(out, n)
			}
		}
		s.Notifications = out
	case ActClearNotifications:
		s.Notifications = []models.Notification{}
	}
}

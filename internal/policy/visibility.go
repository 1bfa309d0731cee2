// Package policy decides, per role, which projects and tasks a user can
// see and what they may do with them. Every function is pure.
package policy

import "github.com/huangang/teamboard/internal/models"

// Access is the outcome of a visibility check. A false Visible implies
// every other field is false.
type Access struct {
	Visible   bool `json:"visible"`
	Editable  bool `json:"canEdit"`
	Deletable bool `json:"canDelete"`
	Draggable bool `json:"canDrag"`
}

// ProjectVisibility: admins see and manage everything, project managers
// see and edit only the projects they manage, everyone else sees the
// projects they are a member of.
func ProjectVisibility(p models.Project, u *models.User) Access {
	if u == nil {
		return Access{}
	}
	switch u.Role {
	case models.RoleAdmin:
		return Access{Visible: true, Editable: true, Deletable: true}
	case models.RoleProjectManager:
		owns := p.IsManagedBy(u.ID)
		return Access{Visible: owns, Editable: owns}
	case models.RoleDeveloper, models.RoleViewer:
		return Access{Visible: p.HasMember(u.ID)}
	}
	return Access{}
}

// TaskVisibility checks a task against its parent project. project may
// be nil when the task references a project that no longer exists.
func TaskVisibility(t models.Task, project *models.Project, u *models.User) Access {
	if u == nil {
		return Access{}
	}
	switch u.Role {
	case models.RoleAdmin:
		return Access{Visible: true, Editable: true, Deletable: true, Draggable: true}
	case models.RoleProjectManager:
		owns := project != nil && project.IsManagedBy(u.ID)
		return Access{Visible: owns, Editable: owns, Deletable: owns, Draggable: owns}
	case models.RoleDeveloper:
		mine := t.AssigneeID != "" && t.AssigneeID == u.ID
		return Access{Visible: mine, Draggable: mine}
	case models.RoleViewer:
		in := project != nil && (project.HasMember(u.ID) || project.IsManagedBy(u.ID))
		return Access{Visible: in}
	}
	return Access{}
}

// CanCreateProject reports whether u may open new projects.
func CanCreateProject(u *models.User) bool {
	return u != nil && (u.Role == models.RoleAdmin || u.Role == models.RoleProjectManager)
}

// CanCreateTask reports whether u may add a task to project.
func CanCreateTask(project *models.Project, u *models.User) bool {
	if u == nil || project == nil {
		return false
	}
	return u.Role == models.RoleAdmin || (u.Role == models.RoleProjectManager && project.IsManagedBy(u.ID))
}

// CanManageTeam reports whether u may change a project's members.
func CanManageTeam(project models.Project, u *models.User) bool {
	return ProjectVisibility(project, u).Editable
}

// CanAdminister gates user management and impersonation.
func CanAdminister(u *models.User) bool {
	return u != nil && u.Role == models.RoleAdmin
}

var landingRoutes = map[models.Role]string{
	models.RoleAdmin:          "/admin/users",
	models.RoleProjectManager: "/projects",
	models.RoleDeveloper:      "/tasks",
	models.RoleViewer:         "/projects",
}

// LandingRoute is where a user of role lands after signing in.
func LandingRoute(role models.Role) string {
	if r, ok := landingRoutes[role]; ok {
		return r
	}
	return "/projects"
}

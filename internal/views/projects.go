package views

import (
	"strings"
	"time"

	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/policy"
)

// ProjectFilter is the projects page filter bar plus global search.
type ProjectFilter struct {
	Status  string    `json:"status" form:"status"` // "all" or a project status
	DueDate DueBucket `json:"dueDate" form:"dueDate"`
	Search  string    `json:"search" form:"search"`
}

// ProjectRow is a visible project decorated for display.
type ProjectRow struct {
	models.Project
	ManagerName string `json:"managerName"`
	policy.Access
}

// VisibleProjects keeps the projects u may see, in their current order.
func VisibleProjects(projects []models.Project, u *models.User) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if policy.ProjectVisibility(p, u).Visible {
			out = append(out, p)
		}
	}
	return out
}

// FilterProjects applies every active predicate of f.
func FilterProjects(projects []models.Project, f ProjectFilter, now time.Time) []models.Project {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if f.Status != "" && f.Status != "all" && string(p.Status) != f.Status {
			continue
		}
		if !f.DueDate.Match(p.DueDate, now) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Tag)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// ProjectRows runs the projects pipeline: visibility, filters, due date
// sort, then decoration with manager name and permissions.
func ProjectRows(projects []models.Project, users []models.User, u *models.User, f ProjectFilter, now time.Time) []ProjectRow {
	names := userNames(users)
	filtered := FilterProjects(VisibleProjects(projects, u), f, now)
	SortByDueDate(filtered, func(p models.Project) models.Date { return p.DueDate })

	rows := make([]ProjectRow, 0, len(filtered))
	for _, p := range filtered {
		manager := names[p.ProjectManagerID]
		if manager == "" {
			manager = "Unassigned"
		}
		rows = append(rows, ProjectRow{
			Project:     p,
			ManagerName: manager,
			Access:      policy.ProjectVisibility(p, u),
		})
	}
	return rows
}

func userNames(users []models.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

package views

import (
	"strings"
	"time"

	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/policy"
)

const (
	unknownProject = "Unknown project"
	unassigned     = "Unassigned"
)

// TaskFilter is the tasks page filter bar plus global search.
type TaskFilter struct {
	Status    string    `json:"status" form:"status"`
	Priority  string    `json:"priority" form:"priority"`
	DueDate   DueBucket `json:"dueDate" form:"dueDate"`
	ProjectID string    `json:"projectId" form:"projectId"`
	Search    string    `json:"search" form:"search"`
}

// TaskRow is a visible task with display names and permissions.
type TaskRow struct {
	models.Task
	ProjectName  string `json:"projectName"`
	AssigneeName string `json:"assigneeName"`
	policy.Access
}

// EnhanceTasks keeps the tasks u may see and decorates them. Tasks that
// fail visibility never reach any later stage.
func EnhanceTasks(tasks []models.Task, projects []models.Project, users []models.User, u *models.User) []TaskRow {
	byID := make(map[string]*models.Project, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}
	names := userNames(users)

	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		project := byID[t.ProjectID]
		access := policy.TaskVisibility(t, project, u)
		if !access.Visible {
			continue
		}
		row := TaskRow{Task: t, ProjectName: unknownProject, AssigneeName: unassigned, Access: access}
		if project != nil {
			row.ProjectName = project.Name
		}
		if name, ok := names[t.AssigneeID]; ok && t.AssigneeID != "" {
			row.AssigneeName = name
		}
		rows = append(rows, row)
	}
	return rows
}

// FilterTasks applies every active predicate of f.
func FilterTasks(rows []TaskRow, f TaskFilter, now time.Time) []TaskRow {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]TaskRow, 0, len(rows))
	for _, r := range rows {
		if f.ProjectID != "" && f.ProjectID != "all" && r.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(r.Status) != f.Status {
			continue
		}
		if f.Priority != "" && f.Priority != "all" && string(r.Priority) != f.Priority {
			continue
		}
		if !f.DueDate.Match(r.DueDate, now) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(r.Title + " " + r.Description + " " + r.ProjectName)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// TaskRows runs the full task pipeline and sorts by due date.
func TaskRows(tasks []models.Task, projects []models.Project, users []models.User, u *models.User, f TaskFilter, now time.Time) []TaskRow {
	rows := FilterTasks(EnhanceTasks(tasks, projects, users, u), f, now)
	SortByDueDate(rows, func(r TaskRow) models.Date { return r.DueDate })
	return rows
}

type BoardColumn struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []TaskRow         `json:"tasks"`
}

// GroupBoard partitions rows into the four status columns in fixed
// order, each sorted by due date. Rows with an unknown status are left
// off the board.
func GroupBoard(rows []TaskRow) []BoardColumn {
	cols := make([]BoardColumn, len(models.TaskStatuses))
	index := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for i, s := range models.TaskStatuses {
		cols[i] = BoardColumn{Status: s, Tasks: []TaskRow{}}
		index[s] = i
	}
	for _, r := range rows {
		if i, ok := index[r.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, r)
		}
	}
	for i := range cols {
		SortByDueDate(cols[i].Tasks, func(r TaskRow) models.Date { return r.DueDate })
	}
	return cols
}

// CanDrop reports whether a drag of taskID to status should be
// committed: the task must be on the board, draggable, and moving.
func CanDrop(rows []TaskRow, taskID string, to models.TaskStatus) bool {
	if !to.Valid() {
		return false
	}
	for _, r := range rows {
		if r.ID == taskID {
			return r.Draggable && r.Status != to
		}
	}
	return false
}

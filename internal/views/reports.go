package views

import (
	"math"
	"slices"
	"time"

	"github.com/huangang/teamboard/internal/models"
)

// LeaderboardSize caps the contributor leaderboard.
const LeaderboardSize = 5

type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StatusHistogram counts projects per status in first-seen order.
func StatusHistogram(projects []models.Project) []Count {
	out := []Count{}
	index := map[models.ProjectStatus]int{}
	for _, p := range projects {
		i, ok := index[p.Status]
		if !ok {
			i = len(out)
			index[p.Status] = i
			out = append(out, Count{Name: string(p.Status)})
		}
		out[i].Value++
	}
	return out
}

// CompletionSplit counts done against not-done tasks.
func CompletionSplit(tasks []models.Task) []Count {
	done := 0
	for _, t := range tasks {
		if t.Status == models.TaskDone {
			done++
		}
	}
	return []Count{
		{Name: "Completed", Value: done},
		{Name: "Open", Value: len(tasks) - done},
	}
}

type Contributor struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
}

// Leaderboard ranks assignees by done tasks. Ties keep the order in
// which assignees were first seen; at most limit entries are returned.
func Leaderboard(tasks []models.Task, users []models.User, limit int) []Contributor {
	names := userNames(users)
	out := []Contributor{}
	index := map[string]int{}
	for _, t := range tasks {
		if t.Status != models.TaskDone || t.AssigneeID == "" {
			continue
		}
		i, ok := index[t.AssigneeID]
		if !ok {
			name, known := names[t.AssigneeID]
			if !known {
				name = "Unknown"
			}
			i = len(out)
			index[t.AssigneeID] = i
			out = append(out, Contributor{UserID: t.AssigneeID, Name: name})
		}
		out[i].Completed++
	}
	slices.SortStableFunc(out, func(a, b Contributor) int { return b.Completed - a.Completed })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type TrendPoint struct {
	Month   string `json:"month"` // 2006-01
	Label   string `json:"label"` // Jan 2006
	Done    int    `json:"done"`
	Planned int    `json:"planned"`
}

// MonthlyTrend buckets tasks by due month, oldest first. Tasks without a
// due date are skipped.
func MonthlyTrend(tasks []models.Task) []TrendPoint {
	byMonth := map[string]*TrendPoint{}
	for _, t := range tasks {
		due, ok := t.DueDate.Time(time.UTC)
		if !ok {
			continue
		}
		key := due.Format("2006-01")
		p, ok := byMonth[key]
		if !ok {
			p = &TrendPoint{Month: key, Label: due.Format("Jan 2006")}
			byMonth[key] = p
		}
		if t.Status == models.TaskDone {
			p.Done++
		} else {
			p.Planned++
		}
	}

	out := make([]TrendPoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	// yyyy-MM keys sort chronologically as strings
	slices.SortFunc(out, func(a, b TrendPoint) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		}
		return 0
	})
	return out
}

type Summary struct {
	ProjectCount   int `json:"projectCount"`
	ActiveProjects int `json:"activeProjects"`
	CompletionRate int `json:"completionRate"` // percent, rounded
	MemberCount    int `json:"memberCount"`
}

func Summarize(projects []models.Project, tasks []models.Task) Summary {
	s := Summary{ProjectCount: len(projects)}
	members := map[string]struct{}{}
	for _, p := range projects {
		if p.Status != models.ProjectCompleted {
			s.ActiveProjects++
		}
		for _, id := range p.MemberIDs {
			members[id] = struct{}{}
		}
	}
	s.MemberCount = len(members)

	if len(tasks) > 0 {
		done := 0
		for _, t := range tasks {
			if t.Status == models.TaskDone {
				done++
			}
		}
		s.CompletionRate = int(math.Round(float64(done) / float64(len(tasks)) * 100))
	}
	return s
}

// Report bundles every aggregate of the reports page.
type Report struct {
	Summary         Summary       `json:"summary"`
	StatusHistogram []Count       `json:"statusHistogram"`
	Completion      []Count       `json:"completion"`
	Leaderboard     []Contributor `json:"leaderboard"`
	Trend           []TrendPoint  `json:"trend"`
}

func BuildReport(users []models.User, projects []models.Project, tasks []models.Task) Report {
	return Report{
		Summary:         Summarize(projects, tasks),
		StatusHistogram: StatusHistogram(projects),
		Completion:      CompletionSplit(tasks),
		Leaderboard:     Leaderboard(tasks, users, LeaderboardSize),
		Trend:           MonthlyTrend(tasks),
	}
}

// CompletedByMember counts done tasks per assignee within one project.
func CompletedByMember(tasks []models.Task, projectID string) map[string]int {
	out := map[string]int{}
	for _, t := range tasks {
		if t.ProjectID == projectID && t.Status == models.TaskDone && t.AssigneeID != "" {
			out[t.AssigneeID]++
		}
	}
	return out
}

// AccessibleTeams lists the projects whose team page u may open.
func AccessibleTeams(projects []models.Project, u *models.User) []models.Project {
	return VisibleProjects(projects, u)
}

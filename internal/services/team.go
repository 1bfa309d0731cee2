package services

import (
	"context"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

type TeamStats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
}

// TeamSnapshot is a project together with its resolved members and tasks.
type TeamSnapshot struct {
	Project models.Project `json:"project"`
	Members []models.User  `json:"members"`
	Tasks   []models.Task  `json:"tasks"`
	Stats   TeamStats      `json:"stats"`
}

// FetchTeamSnapshot resolves a project's members, skipping ids that no
// longer match a user.
func (f *Facade) FetchTeamSnapshot(ctx context.Context, projectID string) (TeamSnapshot, error) {
	return invoke(ctx, f, "fetch_team_snapshot", func() (TeamSnapshot, error) {
		var (
			team  TeamSnapshot
			found bool
		)
		f.store.View(func(data *datastore.Snapshot) {
			for _, p := range data.Projects {
				if p.ID == projectID {
					team.Project = p.Clone()
					found = true
					break
				}
			}
			if !found {
				return
			}
			byID := make(map[string]models.User, len(data.Users))
			for _, u := range data.Users {
				byID[u.ID] = u
			}
			team.Members = make([]models.User, 0, len(team.Project.MemberIDs))
			for _, id := range team.Project.MemberIDs {
				if u, ok := byID[id]; ok {
					team.Members = append(team.Members, u)
				}
			}
			team.Tasks = []models.Task{}
			for _, t := range data.Tasks {
				if t.ProjectID != projectID {
					continue
				}
				team.Tasks = append(team.Tasks, t)
				if t.Status == models.TaskDone {
					team.Stats.CompletedTasks++
				}
			}
			team.Stats.TotalTasks = len(team.Tasks)
		})
		if !found {
			return TeamSnapshot{}, notFound(msgTeamNotFound)
		}
		return team, nil
	})
}

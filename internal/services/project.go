package services

import (
	"context"
	"slices"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

func (f *Facade) FetchProjects(ctx context.Context) ([]models.Project, error) {
	return invoke(ctx, f, "fetch_projects", func() ([]models.Project, error) {
		return f.store.Projects(), nil
	})
}

// CreateProject stores a new project ahead of the existing ones. Status
// defaults to planning and members to an empty set; the manager is
// always made a member.
func (f *Facade) CreateProject(ctx context.Context, input models.Project) (models.Project, error) {
	return invoke(ctx, f, "create_project", func() (models.Project, error) {
		p := input.Clone()
		p.ID = f.newID("p")
		if p.Status == "" {
			p.Status = models.ProjectPlanning
		}
		if !p.Status.Valid() {
			return models.Project{}, failed("Invalid project status: " + string(p.Status))
		}
		p.EnsureManagerMember()

		err := f.store.Update(func(tx *datastore.Snapshot) error {
			tx.Projects = slices.Insert(tx.Projects, 0, p)
			return nil
		})
		if err != nil {
			return models.Project{}, err
		}
		return p.Clone(), nil
	})
}

// UpdateProject merges patch into the stored project.
func (f *Facade) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	return invoke(ctx, f, "update_project", func() (models.Project, error) {
		if patch.Status != nil && !patch.Status.Valid() {
			return models.Project{}, failed("Invalid project status: " + string(*patch.Status))
		}
		return f.mutateProject(id, func(p *models.Project) { patch.Apply(p) })
	})
}

// AssignMembers replaces the member set of a project.
func (f *Facade) AssignMembers(ctx context.Context, projectID string, memberIDs []string) (models.Project, error) {
	return invoke(ctx, f, "assign_members", func() (models.Project, error) {
		return f.mutateProject(projectID, func(p *models.Project) {
			p.MemberIDs = slices.Clone(memberIDs)
		})
	})
}

// DeleteProject removes the project and every task under it in one
// commit. Deleting an unknown id is a no-op that still reports the id.
func (f *Facade) DeleteProject(ctx context.Context, id string) (string, error) {
	return invoke(ctx, f, "delete_project", func() (string, error) {
		err := f.store.Update(func(tx *datastore.Snapshot) error {
			tx.Projects = slices.DeleteFunc(tx.Projects, func(p models.Project) bool { return p.ID == id })
			tx.Tasks = slices.DeleteFunc(tx.Tasks, func(t models.Task) bool { return t.ProjectID == id })
			return nil
		})
		return id, err
	})
}

func (f *Facade) mutateProject(id string, fn func(p *models.Project)) (models.Project, error) {
	var updated models.Project
	err := f.store.Update(func(tx *datastore.Snapshot) error {
		i := slices.IndexFunc(tx.Projects, func(p models.Project) bool { return p.ID == id })
		if i < 0 {
			return notFound(msgProjectNotFound)
		}
		p := &tx.Projects[i]
		fn(p)
		p.ID = id
		p.EnsureManagerMember()
		updated = p.Clone()
		return nil
	})
	return updated, err
}

package services

import (
	"context"
	"slices"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

func (f *Facade) FetchTasks(ctx context.Context) ([]models.Task, error) {
	return invoke(ctx, f, "fetch_tasks", func() ([]models.Task, error) {
		return f.store.Tasks(), nil
	})
}

// CreateTask stores a new task ahead of the existing ones. Status
// defaults to todo and priority to medium.
func (f *Facade) CreateTask(ctx context.Context, input models.Task) (models.Task, error) {
	return invoke(ctx, f, "create_task", func() (models.Task, error) {
		t := input
		t.ID = f.newID("t")
		if t.Status == "" {
			t.Status = models.TaskTodo
		}
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		}

		err := f.store.Update(func(tx *datastore.Snapshot) error {
			if err := validateTask(tx, t); err != nil {
				return err
			}
			tx.Tasks = slices.Insert(tx.Tasks, 0, t)
			return nil
		})
		if err != nil {
			return models.Task{}, err
		}
		return t, nil
	})
}

// UpdateTask merges patch into the stored task.
func (f *Facade) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	return invoke(ctx, f, "update_task", func() (models.Task, error) {
		var updated models.Task
		err := f.store.Update(func(tx *datastore.Snapshot) error {
			i := slices.IndexFunc(tx.Tasks, func(t models.Task) bool { return t.ID == id })
			if i < 0 {
				return notFound(msgTaskNotFound)
			}
			t := tx.Tasks[i]
			patch.Apply(&t)
			t.ID = id
			if err := validateTask(tx, t); err != nil {
				return err
			}
			tx.Tasks[i] = t
			updated = t
			return nil
		})
		return updated, err
	})
}

// DeleteTask removes a task. Unknown ids are a no-op.
func (f *Facade) DeleteTask(ctx context.Context, id string) (string, error) {
	return invoke(ctx, f, "delete_task", func() (string, error) {
		err := f.store.Update(func(tx *datastore.Snapshot) error {
			tx.Tasks = slices.DeleteFunc(tx.Tasks, func(t models.Task) bool { return t.ID == id })
			return nil
		})
		return id, err
	})
}

// validateTask checks enum values and that the project exists and the
// assignee, when set, belongs to it.
func validateTask(tx *datastore.Snapshot, t models.Task) error {
	if !t.Status.Valid() {
		return failed("Invalid task status: " + string(t.Status))
	}
	if !t.Priority.Valid() {
		return failed("Invalid task priority: " + string(t.Priority))
	}
	if t.ProjectID == "" {
		return failed("Task must belong to a project")
	}
	i := slices.IndexFunc(tx.Projects, func(p models.Project) bool { return p.ID == t.ProjectID })
	if i < 0 {
		return notFound(msgProjectNotFound)
	}
	if t.AssigneeID != "" && !tx.Projects[i].HasMember(t.AssigneeID) {
		return failed("Assignee must be a member of the project")
	}
	return nil
}

package state

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/views"
	"github.com/huangang/teamboard/pkg/logger"
	"github.com/rs/zerolog"
)

var (
	// ErrClosed is returned once a session has been closed. Results of
	// calls still in flight at that point are dropped.
	ErrClosed = errors.New("state: session closed")

	// ErrNotDraggable rejects a move of a task the session user cannot drag.
	ErrNotDraggable = errors.New("state: task cannot be moved by this user")
)

// Session runs facade calls on behalf of one dashboard session and
// folds their outcome into its Store.
type Session struct {
	store  *Store
	facade *services.Facade
	now    func() time.Time
	closed atomic.Bool
	log    zerolog.Logger
}

type SessionOption func(*Session)

// WithClock replaces time.Now for notification timestamps and due date
// filtering.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(store *Store, facade *services.Facade, opts ...SessionOption) *Session {
	s := &Session{
		store:  store,
		facade: facade,
		now:    time.Now,
		log:    logger.Component("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Store() *Store { return s.store }

func (s *Session) State() State { return s.store.State() }

func (s *Session) Now() time.Time { return s.now() }

// Close stops the session from applying any further results.
func (s *Session) Close() { s.closed.Store(true) }

// run dispatches the pending, fulfilled and rejected phases of typ around
// call. The fulfilled action carries the call's result.
func run[T any](ctx context.Context, s *Session, typ string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.closed.Load() {
		return zero, ErrClosed
	}
	s.store.Dispatch(Action{Type: typ, Phase: PhasePending})

	v, err := call(ctx)
	if s.closed.Load() {
		s.log.Debug().Str("action", typ).Msg("dropping late result")
		return zero, ErrClosed
	}
	if err != nil {
		s.store.Dispatch(Action{Type: typ, Phase: PhaseRejected, Err: err})
		return zero, err
	}
	s.store.Dispatch(Action{Type: typ, Phase: PhaseFulfilled, Payload: v})
	return v, nil
}

// Notify pushes a notification with a fresh id and timestamp.
func (s *Session) Notify(title, message string, variant models.Variant) models.Notification {
	if variant == "" {
		variant = models.VariantInfo
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Variant:   variant,
		CreatedAt: s.now(),
	}
	if !s.closed.Load() {
		s.store.Dispatch(PushNotification(n))
	}
	return n
}

func (s *Session) notifyErr(title string, err error) {
	if errors.Is(err, ErrClosed) {
		return
	}
	s.Notify(title, err.Error(), models.VariantError)
}

// Dispatch applies a plain action, such as a filter or ui change.
func (s *Session) Dispatch(a Action) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.store.Dispatch(a)
	return nil
}

// Login replaces the session user. Failures only reach the auth slice.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	return run(ctx, s, ActLogin, func(ctx context.Context) (models.User, error) {
		return s.facade.Login(ctx, email, password)
	})
}

func (s *Session) Logout() error { return s.Dispatch(Logout()) }

// Impersonate switches the session to userID, keeping the first real
// identity so StopImpersonation can return to it.
func (s *Session) Impersonate(ctx context.Context, userID string) (models.User, error) {
	u, err := run(ctx, s, ActImpersonate, func(ctx context.Context) (models.User, error) {
		return s.facade.Impersonate(ctx, userID)
	})
	if err != nil {
		s.notifyErr("Impersonation failed", err)
		return u, err
	}
	s.Notify("Impersonation enabled", fmt.Sprintf("You are now browsing as %s.", u.Name), models.VariantInfo)
	return u, nil
}

func (s *Session) StopImpersonation() error { return s.Dispatch(StopImpersonation()) }

func (s *Session) FetchUsers(ctx context.Context) ([]models.User, error) {
	return run(ctx, s, ActFetchUsers, s.facade.FetchUsers)
}

func (s *Session) UpdateRole(ctx context.Context, userID string, role models.Role) (models.User, error) {
	u, err := run(ctx, s, ActUpdateRole, func(ctx context.Context) (models.User, error) {
		return s.facade.UpdateRole(ctx, userID, role)
	})
	if err != nil {
		s.notifyErr("Unable to update role", err)
		return u, err
	}
	s.Notify("Role updated", fmt.Sprintf("%s is now a %s.", u.Name, u.Role.Label()), models.VariantSuccess)
	return u, nil
}

func (s *Session) FetchProjects(ctx context.Context) ([]models.Project, error) {
	return run(ctx, s, ActFetchProjects, s.facade.FetchProjects)
}

// CreateProject stores p. The manager is always counted as a member.
func (s *Session) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p = p.Clone()
	p.EnsureManagerMember()
	created, err := run(ctx, s, ActCreateProject, func(ctx context.Context) (models.Project, error) {
		return s.facade.CreateProject(ctx, p)
	})
	if err != nil {
		s.notifyErr("Unable to save project", err)
		return created, err
	}
	s.Notify("Project created", fmt.Sprintf("%s is now live.", created.Name), models.VariantSuccess)
	return created, nil
}

func (s *Session) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	updated, err := run(ctx, s, ActUpdateProject, func(ctx context.Context) (models.Project, error) {
		return s.facade.UpdateProject(ctx, id, patch)
	})
	if err != nil {
		s.notifyErr("Unable to save project", err)
		return updated, err
	}
	s.Notify("Project updated", fmt.Sprintf("%s was updated successfully.", updated.Name), models.VariantInfo)
	return updated, nil
}

// DeleteProject removes the project; its tasks leave the tasks slice in
// the same dispatch.
func (s *Session) DeleteProject(ctx context.Context, id string) error {
	name := s.projectName(id)
	_, err := run(ctx, s, ActDeleteProject, func(ctx context.Context) (string, error) {
		return s.facade.DeleteProject(ctx, id)
	})
	if err != nil {
		s.notifyErr("Unable to delete project", err)
		return err
	}
	s.Notify("Project removed", fmt.Sprintf("%s was deleted.", name), models.VariantWarning)
	return nil
}

func (s *Session) AssignMembers(ctx context.Context, projectID string, memberIDs []string) (models.Project, error) {
	updated, err := run(ctx, s, ActAssignMembers, func(ctx context.Context) (models.Project, error) {
		return s.facade.AssignMembers(ctx, projectID, memberIDs)
	})
	if err != nil {
		s.notifyErr("Unable to update team", err)
		return updated, err
	}
	s.Notify("Team updated", fmt.Sprintf("%s now has %d members.", updated.Name, len(updated.MemberIDs)), models.VariantSuccess)
	return updated, nil
}

func (s *Session) FetchTasks(ctx context.Context) ([]models.Task, error) {
	return run(ctx, s, ActFetchTasks, s.facade.FetchTasks)
}

func (s *Session) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	created, err := run(ctx, s, ActCreateTask, func(ctx context.Context) (models.Task, error) {
		return s.facade.CreateTask(ctx, t)
	})
	if err != nil {
		s.notifyErr("Unable to save task", err)
		return created, err
	}
	s.Notify("Task created", fmt.Sprintf("%s added to the board.", created.Title), models.VariantSuccess)
	return created, nil
}

func (s *Session) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	updated, err := run(ctx, s, ActUpdateTask, func(ctx context.Context) (models.Task, error) {
		return s.facade.UpdateTask(ctx, id, patch)
	})
	if err != nil {
		s.notifyErr("Unable to save task", err)
		return updated, err
	}
	s.Notify("Task updated", fmt.Sprintf("%s updated successfully.", updated.Title), models.VariantInfo)
	return updated, nil
}

// MoveTask changes only the status of a task on the board. The task must
// be visible and draggable for the session user; a move to the current
// status is a no-op.
func (s *Session) MoveTask(ctx context.Context, id string, to models.TaskStatus) (models.Task, error) {
	st := s.store.State()
	rows := views.EnhanceTasks(st.Tasks.Items, st.Projects.Items, st.Users.Items, st.Auth.User)
	for _, r := range rows {
		if r.ID == id && r.Status == to && r.Draggable {
			return r.Task, nil
		}
	}
	if !views.CanDrop(rows, id, to) {
		return models.Task{}, ErrNotDraggable
	}

	moved, err := run(ctx, s, ActUpdateTask, func(ctx context.Context) (models.Task, error) {
		return s.facade.UpdateTask(ctx, id, models.TaskPatch{Status: &to})
	})
	if err != nil {
		s.notifyErr("Unable to move task", err)
	}
	return moved, err
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	title := s.taskTitle(id)
	_, err := run(ctx, s, ActDeleteTask, func(ctx context.Context) (string, error) {
		return s.facade.DeleteTask(ctx, id)
	})
	if err != nil {
		s.notifyErr("Unable to delete task", err)
		return err
	}
	s.Notify("Task deleted", fmt.Sprintf("%s was removed.", title), models.VariantWarning)
	return nil
}

func (s *Session) FetchReports(ctx context.Context) (services.ReportSnapshot, error) {
	return run(ctx, s, ActFetchReports, s.facade.FetchReportSnapshot)
}

// FetchTeam reads a project's team. It does not touch the state tree.
func (s *Session) FetchTeam(ctx context.Context, projectID string) (services.TeamSnapshot, error) {
	if s.closed.Load() {
		return services.TeamSnapshot{}, ErrClosed
	}
	team, err := s.facade.FetchTeamSnapshot(ctx, projectID)
	if s.closed.Load() {
		return services.TeamSnapshot{}, ErrClosed
	}
	return team, err
}

// Refresh reloads users, projects and tasks.
func (s *Session) Refresh(ctx context.Context) error {
	if _, err := s.FetchUsers(ctx); err != nil {
		return err
	}
	if _, err := s.FetchProjects(ctx); err != nil {
		return err
	}
	_, err := s.FetchTasks(ctx)
	return err
}

func (s *Session) projectName(id string) string {
	for _, p := range s.store.State().Projects.Items {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

func (s *Session) taskTitle(id string) string {
	for _, t := range s.store.State().Tasks.Items {
		if t.ID == id {
			return t.Title
		}
	}
	return id
}

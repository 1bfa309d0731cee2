package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

func newTestFacade() *Facade {
	var (
		mu sync.Mutex
		n  int
	)
	ids := func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-test-%d", prefix, n)
	}
	return NewFacade(datastore.New(), WithLatency(NoLatency), WithIDGenerator(ids))
}

func strPtr(s string) *string { return &s }

func TestLogin(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantID   string
		wantKind Kind
	}{
		{"exact", "priya.patel@teamboard.dev", "manager123", "u-2", ""},
		{"email ignores case", "PRIYA.PATEL@teamboard.DEV", "manager123", "u-2", ""},
		{"password is case sensitive", "priya.patel@teamboard.dev", "MANAGER123", "", KindInvalidCredentials},
		{"unknown email", "nobody@teamboard.dev", "x", "", KindInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := f.Login(ctx, tt.email, tt.password)
			if tt.wantKind != "" {
				if KindOf(err) != tt.wantKind {
					t.Fatalf("Login() kind = %q, expected %q (err=%v)", KindOf(err), tt.wantKind, err)
				}
				if err.Error() != "Invalid email or password" {
					t.Errorf("message = %q, expected %q", err.Error(), "Invalid email or password")
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if u.ID != tt.wantID {
				t.Errorf("ID = %q, expected %q", u.ID, tt.wantID)
			}
		})
	}
}

func TestImpersonate_NotFound(t *testing.T) {
	f := newTestFacade()

	_, err := f.Impersonate(context.Background(), "u-404")
	if !IsNotFound(err) {
		t.Fatalf("Impersonate() error = %v, expected NotFound", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Op != "impersonate" {
		t.Errorf("Op = %q, expected %q", e.Op, "impersonate")
	}
}

func TestUpdateRole(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	u, err := f.UpdateRole(ctx, "u-5", models.RoleDeveloper)
	if err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}
	if u.Role != models.RoleDeveloper {
		t.Errorf("Role = %q, expected %q", u.Role, models.RoleDeveloper)
	}

	if _, err := f.UpdateRole(ctx, "u-404", models.RoleViewer); !IsNotFound(err) {
		t.Errorf("unknown user error = %v, expected NotFound", err)
	}
	if _, err := f.UpdateRole(ctx, "u-5", models.Role("owner")); KindOf(err) != KindOperationFailed {
		t.Errorf("invalid role kind = %q, expected %q", KindOf(err), KindOperationFailed)
	}
}

func TestCreateProject_DefaultsAndPrepend(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	p, err := f.CreateProject(ctx, models.Project{Name: "Orion", ProjectManagerID: "u-2"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if p.ID != "p-test-1" {
		t.Errorf("ID = %q, expected %q", p.ID, "p-test-1")
	}
	if p.Status != models.ProjectPlanning {
		t.Errorf("Status = %q, expected %q", p.Status, models.ProjectPlanning)
	}
	if !p.HasMember("u-2") {
		t.Errorf("MemberIDs = %v, expected manager u-2 included", p.MemberIDs)
	}

	all, _ := f.FetchProjects(ctx)
	if all[0].ID != p.ID {
		t.Errorf("first project = %q, expected newly created %q", all[0].ID, p.ID)
	}

	// returned value must not alias the store
	p.MemberIDs[0] = "u-999"
	again, _ := f.FetchProjects(ctx)
	if again[0].MemberIDs[0] == "u-999" {
		t.Error("CreateProject result aliases the data store")
	}
}

func TestCreateProject_NoManagerHasEmptyMembers(t *testing.T) {
	f := newTestFacade()

	p, err := f.CreateProject(context.Background(), models.Project{Name: "Loose"})
	if err != nil {
		t.Fatal(err)
	}
	if p.MemberIDs == nil || len(p.MemberIDs) != 0 {
		t.Errorf("MemberIDs = %v, expected empty", p.MemberIDs)
	}
}

func TestUpdateProject_Merge(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	p, err := f.UpdateProject(ctx, "p-1", models.ProjectPatch{Name: strPtr("Apollo v2")})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if p.Name != "Apollo v2" {
		t.Errorf("Name = %q, expected %q", p.Name, "Apollo v2")
	}
	if p.Description != models.SeedProjects()[0].Description {
		t.Errorf("Description = %q, untouched field should be kept", p.Description)
	}

	if _, err := f.UpdateProject(ctx, "p-404", models.ProjectPatch{}); !IsNotFound(err) {
		t.Errorf("unknown project error = %v, expected NotFound", err)
	}
}

func TestAssignMembers_ReplacesAndKeepsManager(t *testing.T) {
	f := newTestFacade()

	p, err := f.AssignMembers(context.Background(), "p-1", []string{"u-4"})
	if err != nil {
		t.Fatalf("AssignMembers() error = %v", err)
	}
	if len(p.MemberIDs) != 2 || p.MemberIDs[0] != "u-4" || p.MemberIDs[1] != "u-2" {
		t.Errorf("MemberIDs = %v, expected [u-4 u-2]", p.MemberIDs)
	}
}

func TestDeleteProject_CascadesTasks(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	id, err := f.DeleteProject(ctx, "p-3")
	if err != nil || id != "p-3" {
		t.Fatalf("DeleteProject() = %q, %v", id, err)
	}

	projects, _ := f.FetchProjects(ctx)
	for _, p := range projects {
		if p.ID == "p-3" {
			t.Error("project p-3 still present")
		}
	}
	tasks, _ := f.FetchTasks(ctx)
	for _, task := range tasks {
		if task.ProjectID == "p-3" {
			t.Errorf("task %s of deleted project still present", task.ID)
		}
	}
	if len(tasks) != 5 {
		t.Errorf("tasks = %d, expected 5 remaining", len(tasks))
	}
}

func TestCreateTask_Validation(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	task, err := f.CreateTask(ctx, models.Task{Title: "Spec review", ProjectID: "p-1", AssigneeID: "u-3"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.Status != models.TaskTodo {
		t.Errorf("Status = %q, expected %q", task.Status, models.TaskTodo)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, expected %q", task.Priority, models.PriorityMedium)
	}
	tasks, _ := f.FetchTasks(ctx)
	if tasks[0].ID != task.ID {
		t.Errorf("first task = %q, expected %q", tasks[0].ID, task.ID)
	}

	if _, err := f.CreateTask(ctx, models.Task{Title: "x", ProjectID: "p-404"}); !IsNotFound(err) {
		t.Errorf("unknown project error = %v, expected NotFound", err)
	}
	if _, err := f.CreateTask(ctx, models.Task{Title: "x", ProjectID: "p-2", AssigneeID: "u-3"}); KindOf(err) != KindOperationFailed {
		t.Errorf("non-member assignee error = %v, expected OperationFailed", err)
	}
}

func TestUpdateTask_MergeAndNotFound(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	done := models.TaskDone
	task, err := f.UpdateTask(ctx, "t-1", models.TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if task.Status != models.TaskDone || task.Title != "Design login flow" {
		t.Errorf("UpdateTask() = %+v, expected merged status with title kept", task)
	}

	if _, err := f.UpdateTask(ctx, "t-404", models.TaskPatch{Status: &done}); !IsNotFound(err) {
		t.Errorf("unknown task error = %v, expected NotFound", err)
	}
}

func TestUpdateTask_LastWriteWins(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, title := range []string{"first", "second"} {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			if _, err := f.UpdateTask(ctx, "t-2", models.TaskPatch{Title: strPtr(title)}); err != nil {
				t.Errorf("UpdateTask(%s) error = %v", title, err)
			}
		}(title)
	}
	wg.Wait()

	tasks, _ := f.FetchTasks(ctx)
	for _, task := range tasks {
		if task.ID != "t-2" {
			continue
		}
		// no version check: exactly one of the racing writes survives
		if task.Title != "first" && task.Title != "second" {
			t.Errorf("Title = %q, expected one of the concurrent writes", task.Title)
		}
	}
}

func TestFetchTeamSnapshot(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	// u-404 is not a known user and must be skipped
	if _, err := f.AssignMembers(ctx, "p-3", []string{"u-3", "u-404"}); err != nil {
		t.Fatal(err)
	}

	team, err := f.FetchTeamSnapshot(ctx, "p-3")
	if err != nil {
		t.Fatalf("FetchTeamSnapshot() error = %v", err)
	}
	if len(team.Members) != 2 {
		t.Errorf("members = %d, expected 2", len(team.Members))
	}
	if team.Stats.TotalTasks != 3 || team.Stats.CompletedTasks != 3 {
		t.Errorf("Stats = %+v, expected 3/3", team.Stats)
	}

	_, err = f.FetchTeamSnapshot(ctx, "p-404")
	if !IsNotFound(err) || err.Error() != "Team not found" {
		t.Errorf("unknown team error = %v, expected NotFound %q", err, "Team not found")
	}
}

func TestFetchReportSnapshot_IsDetached(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	snap, err := f.FetchReportSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	snap.Projects[0].MemberIDs[0] = "u-999"
	snap.Tasks[0].Title = "mutated"

	again, _ := f.FetchReportSnapshot(ctx)
	if again.Projects[0].MemberIDs[0] == "u-999" || again.Tasks[0].Title == "mutated" {
		t.Error("report snapshot aliases the data store")
	}
}

func TestCancelledBeforeCommit(t *testing.T) {
	f := NewFacade(datastore.New(), WithLatency(NewRandomLatency(time.Second, time.Second)))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.DeleteProject(ctx, "p-1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("DeleteProject() error = %v, expected deadline exceeded", err)
	}
	if KindOf(err) != KindOperationFailed {
		t.Errorf("kind = %q, expected %q", KindOf(err), KindOperationFailed)
	}
	if len(f.Store().Projects()) != 3 {
		t.Error("cancelled call should not have committed")
	}
}

func TestRandomLatency_Bounds(t *testing.T) {
	l := NewRandomLatency(150*time.Millisecond, 400*time.Millisecond)
	for i := 0; i < 100; i++ {
		d := l.next()
		if d < 150*time.Millisecond || d > 400*time.Millisecond {
			t.Fatalf("next() = %v, outside [150ms, 400ms]", d)
		}
	}

	fixed := NewRandomLatency(200*time.Millisecond, 100*time.Millisecond)
	if fixed.next() != 200*time.Millisecond {
		t.Errorf("max below min should clamp to min, got %v", fixed.next())
	}
}

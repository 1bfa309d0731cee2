package state

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/views"
)

func seededStore() *Store {
	st := Initial()
	st.Users.Items = models.SeedUsers()
	st.Projects.Items = models.SeedProjects()
	st.Tasks.Items = models.SeedTasks()
	return NewStore(st)
}

func fulfilled(typ string, payload any) Action {
	return Action{Type: typ, Phase: PhaseFulfilled, Payload: payload}
}

func user(id string) models.User {
	for _, u := range models.SeedUsers() {
		if u.ID == id {
			return u
		}
	}
	panic("no seed user " + id)
}

func TestImpersonateTwiceKeepsOriginalUser(t *testing.T) {
	s := seededStore()
	s.Dispatch(fulfilled(ActLogin, user("u-1")))
	s.Dispatch(fulfilled(ActImpersonate, user("u-2")))
	s.Dispatch(fulfilled(ActImpersonate, user("u-3")))

	auth := s.State().Auth
	if auth.User == nil || auth.User.ID != "u-3" {
		t.Fatalf("user = %v, expected u-3", auth.User)
	}
	if auth.OriginalUser == nil || auth.OriginalUser.ID != "u-1" {
		t.Fatalf("originalUser = %v, expected u-1", auth.OriginalUser)
	}

	s.Dispatch(StopImpersonation())
	auth = s.State().Auth
	if auth.User.ID != "u-1" || auth.OriginalUser != nil {
		t.Errorf("after stop: user = %s, originalUser = %v, expected u-1 and nil", auth.User.ID, auth.OriginalUser)
	}
}

func TestStopImpersonationWithoutImpersonatingIsNoop(t *testing.T) {
	s := seededStore()
	s.Dispatch(fulfilled(ActLogin, user("u-2")))
	before := s.State()

	s.Dispatch(StopImpersonation())
	after := s.State()

	if after.Auth.User.ID != before.Auth.User.ID || after.Auth.OriginalUser != nil {
		t.Errorf("auth changed: %+v -> %+v", before.Auth, after.Auth)
	}
	if after.Auth.Status != before.Auth.Status {
		t.Errorf("status = %q, expected %q", after.Auth.Status, before.Auth.Status)
	}
}

func TestLoginClearsOriginalUser(t *testing.T) {
	s := seededStore()
	s.Dispatch(fulfilled(ActLogin, user("u-1")))
	s.Dispatch(fulfilled(ActImpersonate, user("u-4")))
	s.Dispatch(fulfilled(ActLogin, user("u-6")))

	auth := s.State().Auth
	if auth.User.ID != "u-6" || auth.OriginalUser != nil {
		t.Errorf("user = %s, originalUser = %v, expected u-6 and nil", auth.User.ID, auth.OriginalUser)
	}
}

func TestRoleUpdatePatchesOriginalUserOnly(t *testing.T) {
	s := seededStore()
	s.Dispatch(fulfilled(ActLogin, user("u-1")))
	s.Dispatch(fulfilled(ActImpersonate, user("u-3")))

	promoted := user("u-1")
	promoted.Role = models.RoleViewer
	s.Dispatch(fulfilled(ActUpdateRole, promoted))

	auth := s.State().Auth
	if auth.OriginalUser.Role != models.RoleViewer {
		t.Errorf("originalUser.role = %q, expected %q", auth.OriginalUser.Role, models.RoleViewer)
	}
	if auth.User.ID != "u-3" || auth.User.Role != models.RoleDeveloper {
		t.Errorf("user = %s/%s, expected u-3/developer", auth.User.ID, auth.User.Role)
	}

	for _, u := range s.State().Users.Items {
		if u.ID == "u-1" && u.Role != models.RoleViewer {
			t.Errorf("users slice role = %q, expected %q", u.Role, models.RoleViewer)
		}
	}
}

func TestAsyncPhases(t *testing.T) {
	s := seededStore()

	s.Dispatch(Action{Type: ActFetchTasks, Phase: PhasePending})
	if got := s.State().Tasks.Status; got != StatusLoading {
		t.Errorf("pending status = %q, expected %q", got, StatusLoading)
	}

	s.Dispatch(Action{Type: ActFetchTasks, Phase: PhaseRejected, Err: errors.New("boom")})
	st := s.State()
	if st.Tasks.Status != StatusFailed || st.Tasks.Error != "boom" {
		t.Errorf("rejected = %q/%q, expected failed/boom", st.Tasks.Status, st.Tasks.Error)
	}

	s.Dispatch(fulfilled(ActFetchTasks, models.SeedTasks()[:2]))
	st = s.State()
	if st.Tasks.Status != StatusSucceeded || st.Tasks.Error != "" || len(st.Tasks.Items) != 2 {
		t.Errorf("fulfilled = %q/%q/%d items, expected succeeded with 2 items", st.Tasks.Status, st.Tasks.Error, len(st.Tasks.Items))
	}
}

func TestCreatePrependsAndUpdateReplaces(t *testing.T) {
	s := seededStore()

	s.Dispatch(fulfilled(ActCreateProject, models.Project{ID: "p-9", Name: "Zephyr", MemberIDs: []string{}}))
	if first := s.State().Projects.Items[0].ID; first != "p-9" {
		t.Errorf("first project = %q, expected p-9", first)
	}

	upd := models.SeedTasks()[0]
	upd.Title = "Design SSO flow"
	s.Dispatch(fulfilled(ActUpdateTask, upd))
	for _, task := range s.State().Tasks.Items {
		if task.ID == upd.ID && task.Title != upd.Title {
			t.Errorf("title = %q, expected %q", task.Title, upd.Title)
		}
	}
}

func TestDeleteProjectCascadesInOneDispatch(t *testing.T) {
	s := seededStore()

	var seen []State
	unsubscribe := s.Subscribe(func(st State, a Action) {
		if a.Type == ActDeleteProject {
			seen = append(seen, st)
		}
	})
	defer unsubscribe()

	s.Dispatch(fulfilled(ActDeleteProject, "p-1"))

	if len(seen) != 1 {
		t.Fatalf("notifications = %d, expected 1", len(seen))
	}
	st := seen[0]
	for _, p := range st.Projects.Items {
		if p.ID == "p-1" {
			t.Error("project p-1 still listed")
		}
	}
	for _, task := range st.Tasks.Items {
		if task.ProjectID == "p-1" {
			t.Errorf("task %s of deleted project still listed", task.ID)
		}
	}
	if got := len(st.Tasks.Items); got != 5 {
		t.Errorf("remaining tasks = %d, expected 5", got)
	}
}

func TestRejectedDeleteKeepsTasks(t *testing.T) {
	s := seededStore()
	s.Dispatch(Action{Type: ActDeleteProject, Phase: PhaseRejected, Err: errors.New("nope")})

	if got := len(s.State().Tasks.Items); got != 8 {
		t.Errorf("tasks = %d, expected 8", got)
	}
}

func TestNotificationsCapped(t *testing.T) {
	s := seededStore()
	for i := 1; i <= 21; i++ {
		s.Dispatch(PushNotification(models.Notification{ID: fmt.Sprintf("n-%d", i), CreatedAt: time.Now()}))
	}

	list := s.State().UI.Notifications
	if len(list) != 20 {
		t.Fatalf("len = %d, expected 20", len(list))
	}
	if list[0].ID != "n-21" {
		t.Errorf("newest = %q, expected n-21", list[0].ID)
	}
	if list[19].ID != "n-2" {
		t.Errorf("oldest kept = %q, expected n-2", list[19].ID)
	}

	s.Dispatch(DismissNotification("n-10"))
	if got := len(s.State().UI.Notifications); got != 19 {
		t.Errorf("after dismiss len = %d, expected 19", got)
	}
	s.Dispatch(ClearNotifications())
	if got := len(s.State().UI.Notifications); got != 0 {
		t.Errorf("after clear len = %d, expected 0", got)
	}
}

func TestUIToggles(t *testing.T) {
	s := seededStore()

	s.Dispatch(ToggleTheme())
	s.Dispatch(ToggleSidebar())
	s.Dispatch(SetGlobalSearch("apollo"))
	s.Dispatch(SetTheme("neon"))

	ui := s.State().UI
	if ui.Theme != "light" {
		t.Errorf("theme = %q, expected %q", ui.Theme, "light")
	}
	if ui.SidebarCollapsed {
		t.Error("sidebar should be expanded after toggle")
	}
	if ui.GlobalSearch != "apollo" {
		t.Errorf("globalSearch = %q, expected %q", ui.GlobalSearch, "apollo")
	}
}

func TestSetFiltersMerge(t *testing.T) {
	s := seededStore()
	overdue := views.DueOverdue
	review := "review"

	s.Dispatch(SetTaskFilter(TaskFilterPatch{DueDate: &overdue}))
	s.Dispatch(SetTaskFilter(TaskFilterPatch{Status: &review}))

	f := s.State().Tasks.Filters
	if f.DueDate != views.DueOverdue || f.Status != "review" || f.Priority != "all" {
		t.Errorf("filters = %+v, expected overdue/review/all", f)
	}
}

func TestReportsSlice(t *testing.T) {
	s := seededStore()
	if _, ok := s.State().Report(); ok {
		t.Fatal("report should be unavailable before a fetch")
	}

	s.Dispatch(fulfilled(ActFetchReports, services.ReportSnapshot{
		Users:    models.SeedUsers(),
		Projects: models.SeedProjects(),
		Tasks:    models.SeedTasks(),
	}))
	r, ok := s.State().Report()
	if !ok {
		t.Fatal("report should be available after a fetch")
	}
	if r.Summary.ProjectCount != 3 {
		t.Errorf("projectCount = %d, expected 3", r.Summary.ProjectCount)
	}
}

func TestStateIsolatedFromReaders(t *testing.T) {
	s := seededStore()
	st := s.State()
	st.Projects.Items[0].MemberIDs[0] = "mutated"
	st.Projects.Items[0].Name = "mutated"

	again := s.State()
	if again.Projects.Items[0].Name == "mutated" || again.Projects.Items[0].MemberIDs[0] == "mutated" {
		t.Error("mutating a returned state leaked into the store")
	}
}

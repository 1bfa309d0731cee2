package models

import (
	"testing"
	"time"
)

func TestDateTime(t *testing.T) {
	tests := []struct {
		in     Date
		ok     bool
		expect string
	}{
		{"2026-10-19", true, "2026-10-19"},
		{"2026-10-19T15:04:05Z", true, "2026-10-19"},
		{"", false, ""},
		{"not-a-date", false, ""},
	}

	for _, tt := range tests {
		got, ok := tt.in.Time(time.UTC)
		if ok != tt.ok {
			t.Errorf("Date(%q).Time() ok = %v, expected %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format(DateLayout) != tt.expect {
			t.Errorf("Date(%q).Time() = %s, expected %s", tt.in, got.Format(DateLayout), tt.expect)
		}
	}
}

func TestProjectEnsureManagerMember(t *testing.T) {
	p := Project{ProjectManagerID: "u-2"}
	p.EnsureManagerMember()
	if !p.HasMember("u-2") {
		t.Errorf("MemberIDs = %v, expected to contain u-2", p.MemberIDs)
	}

	p.EnsureManagerMember()
	if len(p.MemberIDs) != 1 {
		t.Errorf("MemberIDs = %v, manager should only be added once", p.MemberIDs)
	}

	empty := Project{}
	empty.EnsureManagerMember()
	if empty.MemberIDs == nil || len(empty.MemberIDs) != 0 {
		t.Errorf("MemberIDs = %v, expected empty non-nil slice", empty.MemberIDs)
	}
}

func TestProjectClone_Detached(t *testing.T) {
	p := Project{ID: "p-1", MemberIDs: []string{"u-1"}}
	c := p.Clone()
	c.MemberIDs[0] = "u-9"
	if p.MemberIDs[0] != "u-1" {
		t.Error("Clone should not share the member slice")
	}
}

func TestProjectPatch_MergesOnlySetFields(t *testing.T) {
	p := Project{ID: "p-1", Name: "Old", Description: "keep me", Tag: "Web"}
	name := "New"
	ProjectPatch{Name: &name}.Apply(&p)

	if p.Name != "New" {
		t.Errorf("Name = %q, expected %q", p.Name, "New")
	}
	if p.Description != "keep me" || p.Tag != "Web" {
		t.Errorf("untouched fields changed: %+v", p)
	}
}

func TestTaskPatch_StatusOnly(t *testing.T) {
	done := TaskDone
	title := "x"

	if !(TaskPatch{Status: &done}).StatusOnly() {
		t.Error("status-only patch should report StatusOnly")
	}
	if (TaskPatch{Status: &done, Title: &title}).StatusOnly() {
		t.Error("patch touching title should not report StatusOnly")
	}
	if (TaskPatch{}).StatusOnly() {
		t.Error("empty patch should not report StatusOnly")
	}
}

func TestUserHelpers(t *testing.T) {
	u := User{ID: "u-1", Email: "Alex.Morgan@TeamBoard.dev", Password: "secret", Role: RoleAdmin}

	if !u.EmailMatches("alex.morgan@teamboard.dev") {
		t.Error("EmailMatches should ignore case")
	}
	if u.Public().Password != "" {
		t.Error("Public should strip the password")
	}
	if u.Password != "secret" {
		t.Error("Public should not modify the receiver")
	}
	if RoleProjectManager.Label() != "Project Manager" {
		t.Errorf("Label = %q, expected %q", RoleProjectManager.Label(), "Project Manager")
	}
	if Role("owner").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestSeedInvariants(t *testing.T) {
	users := map[string]bool{}
	for _, u := range SeedUsers() {
		users[u.ID] = true
	}
	projects := map[string]Project{}
	for _, p := range SeedProjects() {
		if p.ProjectManagerID != "" && !p.HasMember(p.ProjectManagerID) {
			t.Errorf("project %s: manager %s missing from members", p.ID, p.ProjectManagerID)
		}
		projects[p.ID] = p
	}
	for _, task := range SeedTasks() {
		p, ok := projects[task.ProjectID]
		if !ok {
			t.Errorf("task %s references unknown project %s", task.ID, task.ProjectID)
			continue
		}
		if task.AssigneeID != "" && !p.HasMember(task.AssigneeID) {
			t.Errorf("task %s assignee %s is not a member of %s", task.ID, task.AssigneeID, p.ID)
		}
	}
}

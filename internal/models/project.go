package models

import "slices"

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectBlocked    ProjectStatus = "blocked"
	ProjectCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectBlocked, ProjectCompleted:
		return true
	}
	return false
}

// Project groups tasks and the users allowed to work on them.
// MemberIDs always contains ProjectManagerID when one is set.
type Project struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Status           ProjectStatus `json:"status"`
	DueDate          Date          `json:"dueDate,omitempty"`
	ProjectManagerID string        `json:"projectManagerId,omitempty"`
	MemberIDs        []string      `json:"memberIds"`
	Tag              string        `json:"tag,omitempty"`
}

func (p Project) Key() string { return p.ID }

func (p Project) Clone() Project {
	p.MemberIDs = slices.Clone(p.MemberIDs)
	if p.MemberIDs == nil {
		p.MemberIDs = []string{}
	}
	return p
}

func (p Project) HasMember(userID string) bool {
	return slices.Contains(p.MemberIDs, userID)
}

// IsManagedBy reports whether userID is the project's manager.
func (p Project) IsManagedBy(userID string) bool {
	return p.ProjectManagerID != "" && p.ProjectManagerID == userID
}

// EnsureManagerMember appends the manager to MemberIDs when missing.
func (p *Project) EnsureManagerMember() {
	if p.MemberIDs == nil {
		p.MemberIDs = []string{}
	}
	if p.ProjectManagerID != "" && !p.HasMember(p.ProjectManagerID) {
		p.MemberIDs = append(p.MemberIDs, p.ProjectManagerID)
	}
}

// ProjectPatch lists the fields an update touches; nil fields are kept.
type ProjectPatch struct {
	Name             *string        `json:"name,omitempty"`
	Description      *string        `json:"description,omitempty"`
	Status           *ProjectStatus `json:"status,omitempty"`
	DueDate          *Date          `json:"dueDate,omitempty"`
	ProjectManagerID *string        `json:"projectManagerId,omitempty"`
	MemberIDs        *[]string      `json:"memberIds,omitempty"`
	Tag              *string        `json:"tag,omitempty"`
}

// Apply merges the patch into p.
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.DueDate != nil {
		p.DueDate = *pp.DueDate
	}
	if pp.ProjectManagerID != nil {
		p.ProjectManagerID = *pp.ProjectManagerID
	}
	if pp.MemberIDs != nil {
		p.MemberIDs = slices.Clone(*pp.MemberIDs)
	}
	if pp.Tag != nil {
		p.Tag = *pp.Tag
	}
}

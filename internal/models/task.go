package models

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses is the fixed board column order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   string     `json:"projectId"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     Date       `json:"dueDate,omitempty"`
}

func (t Task) Key() string { return t.ID }

type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	ProjectID   *string     `json:"projectId,omitempty"`
	AssigneeID  *string     `json:"assigneeId,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	DueDate     *Date       `json:"dueDate,omitempty"`
}

// StatusOnly reports whether the patch changes nothing but the status,
// which is the one edit an assignee may make.
func (tp TaskPatch) StatusOnly() bool {
	return tp.Status != nil && tp.Title == nil && tp.Description == nil &&
		tp.ProjectID == nil && tp.AssigneeID == nil && tp.Priority == nil && tp.DueDate == nil
}

func (tp TaskPatch) Apply(t *Task) {
	if tp.Title != nil {
		t.Title = *tp.Title
	}
	if tp.Description != nil {
		t.Description = *tp.Description
	}
	if tp.ProjectID != nil {
		t.ProjectID = *tp.ProjectID
	}
	if tp.AssigneeID != nil {
		t.AssigneeID = *tp.AssigneeID
	}
	if tp.Status != nil {
		t.Status = *tp.Status
	}
	if tp.Priority != nil {
		t.Priority = *tp.Priority
	}
	if tp.DueDate != nil {
		t.DueDate = *tp.DueDate
	}
}

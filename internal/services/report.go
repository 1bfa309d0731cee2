package services

import (
	"context"

	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/models"
)

// ReportSnapshot is the read-only dataset analytics are computed from.
type ReportSnapshot struct {
	Users    []models.User    `json:"users"`
	Projects []models.Project `json:"projects"`
	Tasks    []models.Task    `json:"tasks"`
}

func (f *Facade) FetchReportSnapshot(ctx context.Context) (ReportSnapshot, error) {
	return invoke(ctx, f, "fetch_report_snapshot", func() (ReportSnapshot, error) {
		return reportFrom(f.store.Snapshot()), nil
	})
}

func reportFrom(s datastore.Snapshot) ReportSnapshot {
	return ReportSnapshot{Users: s.Users, Projects: s.Projects, Tasks: s.Tasks}
}

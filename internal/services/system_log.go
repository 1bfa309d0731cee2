package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// AuditEntry describes one mutating request.
type AuditEntry struct {
	Level     string
	Module    string
	Action    string
	Message   string
	UserID    string
	Username  string
	IP        string
	UserAgent string
	Extra     interface{}
}

// SystemLogService writes and queries the audit trail.
type SystemLogService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db, now: time.Now}
}

// Record stores entry. Failures are logged, never returned, so auditing
// cannot break the request it describes.
func (s *SystemLogService) Record(entry AuditEntry) {
	if s == nil || s.db == nil {
		return
	}
	level := entry.Level
	if level == "" {
		level = "info"
	}

	var extra string
	if entry.Extra != nil {
		if b, err := json.Marshal(entry.Extra); err == nil {
			extra = string(b)
		}
	}

	row := &models.SystemLog{
		Level:     level,
		Module:    entry.Module,
		Action:    entry.Action,
		Message:   entry.Message,
		UserID:    entry.UserID,
		Username:  entry.Username,
		IP:        entry.IP,
		UserAgent: entry.UserAgent,
		Extra:     extra,
		CreatedAt: s.now(),
	}
	if err := s.db.Create(row).Error; err != nil {
		logger.Error().Err(err).Str("module", entry.Module).Msg("failed to write audit log")
	}
}

type SystemLogListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Level    string `form:"level"`
	Module   string `form:"module"`
	UserID   string `form:"user_id"`
	Search   string `form:"search"`
}

type SystemLogListResponse struct {
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Items    []models.SystemLog `json:"items"`
}

func (s *SystemLogService) List(req *SystemLogListRequest) (*SystemLogListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.SystemLog{})
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.UserID != "" {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.Search != "" {
		query = query.Where("message LIKE ?", "%"+req.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.SystemLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &SystemLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

// CleanupOldLogs deletes entries older than retentionDays and returns how
// many were removed. Non-positive retention keeps everything.
func (s *SystemLogService) CleanupOldLogs(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := s.now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StartLogCleanupScheduler runs CleanupOldLogs on the cron spec. The
// returned scheduler must be stopped on shutdown.
func StartLogCleanupScheduler(svc *SystemLogService, spec string, retentionDays int) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() { runCleanup(svc, retentionDays) })
	if err != nil {
		return nil, fmt.Errorf("schedule audit cleanup %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

func runCleanup(svc *SystemLogService, retentionDays int) {
	if retentionDays <= 0 {
		logger.Info().Msg("[SystemLog] cleanup disabled (retention_days <= 0)")
		return
	}

	deleted, err := svc.CleanupOldLogs(retentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("[SystemLog] failed to clean up old logs")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Int("retention_days", retentionDays).Msg("[SystemLog] cleaned up old logs")
	}
}

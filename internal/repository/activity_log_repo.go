package repository

import (
	"context"

	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/model"
)

// ActivityLogRepository 动作流水仓储接口
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error)
	ListByAction(ctx context.Context, action string, limit int) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepository 创建动作流水仓储
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *activityLogRepo) ListByAction(ctx context.Context, action string, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

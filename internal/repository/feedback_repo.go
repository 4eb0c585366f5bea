package repository

import (
	"context"

	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// FeedbackRepository 反馈工单仓储接口
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetByID(ctx context.Context, id int64) (*model.Feedback, error)
	List(ctx context.Context, filter FeedbackFilter) ([]model.Feedback, int64, error)
	// Reply 管理员回复 + 可选物流单号，回复非空即视为已处理
	Reply(ctx context.Context, id int64, reply, logisticsInfo string) error
	Delete(ctx context.Context, id int64) error
}

// FeedbackFilter 反馈过滤条件
type FeedbackFilter struct {
	Category  string
	UserID    int64
	Country   string
	Processed *bool // nil 不过滤；true 只看已回复；false 只看未回复
	Page      int
	PageSize  int
}

// ==================== 仓储实现 ====================

type feedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建反馈仓储
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepo) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&feedback, id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepo) List(ctx context.Context, filter FeedbackFilter) ([]model.Feedback, int64, error) {
	var feedbacks []model.Feedback
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Feedback{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Processed != nil {
		if *filter.Processed {
			query = query.Where("reply != ''")
		} else {
			query = query.Where("reply = ''")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("Product").
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&feedbacks).Error

	return feedbacks, total, err
}

func (r *feedbackRepo) Reply(ctx context.Context, id int64, reply, logisticsInfo string) error {
	return r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reply":          reply,
			"logistics_info": logisticsInfo,
		}).Error
}

func (r *feedbackRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Feedback{}, id).Error
}

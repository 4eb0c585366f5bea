package repository

import (
	"context"

	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/model"
)

// LiveHubRepository 直播中心内容仓储接口
type LiveHubRepository interface {
	Create(ctx context.Context, content *model.LiveHubContent) error
	GetByID(ctx context.Context, id int64) (*model.LiveHubContent, error)
	ListByCategory(ctx context.Context, category string) ([]model.LiveHubContent, error)
	Delete(ctx context.Context, id int64) error
}

type liveHubRepo struct {
	db *gorm.DB
}

// NewLiveHubRepository 创建直播中心仓储
func NewLiveHubRepository(db *gorm.DB) LiveHubRepository {
	return &liveHubRepo{db: db}
}

func (r *liveHubRepo) Create(ctx context.Context, content *model.LiveHubContent) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *liveHubRepo) GetByID(ctx context.Context, id int64) (*model.LiveHubContent, error) {
	var content model.LiveHubContent
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *liveHubRepo) ListByCategory(ctx context.Context, category string) ([]model.LiveHubContent, error) {
	var contents []model.LiveHubContent
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&contents).Error
	return contents, err
}

func (r *liveHubRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.LiveHubContent{}, id).Error
}

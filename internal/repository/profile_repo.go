package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProfileRepository 用户档案仓储接口
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id int64) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	List(ctx context.Context, filter ProfileFilter) ([]model.Profile, int64, error)

	// 登录痕迹
	TouchLogin(ctx context.Context, id int64, ip string, at time.Time) error

	// 批量修复空用户名（用户名取邮箱 @ 前缀）
	ListWithEmptyUsername(ctx context.Context) ([]model.Profile, error)
}

// ProfileFilter 档案过滤条件
type ProfileFilter struct {
	Role    string
	Country string
	Keyword string // 用户名 / 邮箱模糊匹配
	Page    int
	PageSize int
}

// ==================== 仓储实现 ====================

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepository 创建档案仓储
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepo) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *profileRepo) List(ctx context.Context, filter ProfileFilter) ([]model.Profile, int64, error) {
	var profiles []model.Profile
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Profile{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", kw, kw)
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
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *profileRepo) TouchLogin(ctx context.Context, id int64, ip string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": at,
			"last_login_ip": ip,
		}).Error
}

func (r *profileRepo) ListWithEmptyUsername(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Where("username = '' OR username IS NULL").
		Find(&profiles).Error
	return profiles, err
}

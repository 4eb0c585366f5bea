package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"liveops_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 产品仓储接口，SKU 为业务主键
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)

	// UpsertBySKU 按 SKU 插入或更新文案字段，图片字段不动
	UpsertBySKU(ctx context.Context, product *model.Product) error

	// ListIncomplete 翻译不完整的产品，供后台补翻任务使用
	ListIncomplete(ctx context.Context, limit int) ([]model.Product, error)
}

// ProductFilter 产品过滤条件
type ProductFilter struct {
	Keyword  string // SKU 或名称模糊匹配
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建产品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		// 名称是 jsonb 文案整包，最简做法直接对序列化文本模糊匹配
		query = query.Where("sku LIKE ? OR name LIKE ?", kw, kw)
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
		Order("updated_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepo) UpsertBySKU(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "size", "features", "updated_at",
		}),
	}).Create(product).Error
}

func (r *productRepo) ListIncomplete(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	if limit <= 0 {
		limit = 50
	}
	// 任一语种缺失就算不完整，整包 jsonb 里找空串
	err := r.db.WithContext(ctx).
		Where(`name LIKE '%""%' OR size LIKE '%""%' OR features LIKE '%""%'`).
		Limit(limit).
		Find(&products).Error
	return products, err
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"liveops_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ScheduleRepository 排班仓储接口
// 排班格子的唯一键是 (shop_id, date, hour_slot)
type ScheduleRepository interface {
	// Upsert 排班/改排班，撞键时覆盖主播并清空旧的复盘数据
	Upsert(ctx context.Context, entry *model.ScheduleEntry) error
	// DeleteCell 取消排班，物理删除释放唯一键
	DeleteCell(ctx context.Context, shopID int64, date string, hourSlot int) error
	GetCell(ctx context.Context, shopID int64, date string, hourSlot int) (*model.ScheduleEntry, error)
	// UpdateReport 主播复盘数据回填
	UpdateReport(ctx context.Context, id int64, fansAdded int, mood string) error
	// ListRange 查询 [from, to] 闭区间内某店铺的全部排班
	ListRange(ctx context.Context, shopID int64, from, to string) ([]model.ScheduleEntry, error)
	ListByAnchor(ctx context.Context, anchorID int64, from, to string) ([]model.ScheduleEntry, error)

	WithTx(tx *gorm.DB) ScheduleRepository
	Transaction(ctx context.Context, fn func(txRepo ScheduleRepository) error) error
}

// ==================== 仓储实现 ====================

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepository 创建排班仓储
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Upsert(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "date"}, {Name: "hour_slot"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"anchor_id", "anchor_name",
			// 换人排班后旧复盘数据无意义，一并清掉
			"fans_added", "mood",
			"updated_at",
		}),
	}).Create(entry).Error
}

func (r *scheduleRepo) DeleteCell(ctx context.Context, shopID int64, date string, hourSlot int) error {
	return r.db.WithContext(ctx).
		Where("shop_id = ? AND date = ? AND hour_slot = ?", shopID, date, hourSlot).
		Delete(&model.ScheduleEntry{}).Error
}

func (r *scheduleRepo) GetCell(ctx context.Context, shopID int64, date string, hourSlot int) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND date = ? AND hour_slot = ?", shopID, date, hourSlot).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepo) UpdateReport(ctx context.Context, id int64, fansAdded int, mood string) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"fans_added": fansAdded,
			"mood":       mood,
		}).Error
}

func (r *scheduleRepo) ListRange(ctx context.Context, shopID int64, from, to string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND date >= ? AND date <= ?", shopID, from, to).
		Order("date ASC, hour_slot ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) ListByAnchor(ctx context.Context, anchorID int64, from, to string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("anchor_id = ? AND date >= ? AND date <= ?", anchorID, from, to).
		Order("date ASC, hour_slot ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) WithTx(tx *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: tx}
}

func (r *scheduleRepo) Transaction(ctx context.Context, fn func(txRepo ScheduleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

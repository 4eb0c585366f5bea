package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"liveops_dev_v1_202608/internal/model"
)

// ==================== 测试辅助 ====================

func setupScheduleRepoTest(t *testing.T) (*gorm.DB, ScheduleRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.ScheduleEntry{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db, NewScheduleRepository(db)
}

// ==================== 单元测试 ====================

func TestUpsert_ConflictOverwrites(t *testing.T) {
	db, repo := setupScheduleRepoTest(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &model.ScheduleEntry{
		ShopID: 1, Date: "2026-08-24", HourSlot: 10, AnchorID: 100, AnchorName: "甲",
	}); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	// 回填复盘
	cell, _ := repo.GetCell(ctx, 1, "2026-08-24", 10)
	if err := repo.UpdateReport(ctx, cell.ID, 50, "顺利"); err != nil {
		t.Fatalf("回填失败: %v", err)
	}

	// 撞唯一键覆盖
	if err := repo.Upsert(ctx, &model.ScheduleEntry{
		ShopID: 1, Date: "2026-08-24", HourSlot: 10, AnchorID: 200, AnchorName: "乙",
	}); err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}

	var count int64
	db.Model(&model.ScheduleEntry{}).Count(&count)
	if count != 1 {
		t.Fatalf("撞键不应新增行, count = %d", count)
	}

	cell, err := repo.GetCell(ctx, 1, "2026-08-24", 10)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if cell.AnchorID != 200 || cell.AnchorName != "乙" {
		t.Errorf("主播未覆盖: %+v", cell)
	}
	if cell.FansAdded != nil || cell.Mood != "" {
		t.Errorf("旧复盘未清空: fans=%v mood=%q", cell.FansAdded, cell.Mood)
	}
}

func TestDeleteCell_ReleasesUniqueKey(t *testing.T) {
	_, repo := setupScheduleRepoTest(t)
	ctx := context.Background()

	repo.Upsert(ctx, &model.ScheduleEntry{ShopID: 2, Date: "2026-08-24", HourSlot: 8, AnchorID: 1, AnchorName: "甲"})
	if err := repo.DeleteCell(ctx, 2, "2026-08-24", 8); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	if _, err := repo.GetCell(ctx, 2, "2026-08-24", 8); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("删除后应查不到, got %v", err)
	}

	// 物理删除后同键可重新写入
	if err := repo.Upsert(ctx, &model.ScheduleEntry{ShopID: 2, Date: "2026-08-24", HourSlot: 8, AnchorID: 2, AnchorName: "乙"}); err != nil {
		t.Errorf("释放唯一键后重排失败: %v", err)
	}
}

func TestListRange_InclusiveAndOrdered(t *testing.T) {
	_, repo := setupScheduleRepoTest(t)
	ctx := context.Background()

	cells := []model.ScheduleEntry{
		{ShopID: 3, Date: "2026-08-26", HourSlot: 9, AnchorID: 1, AnchorName: "甲"},
		{ShopID: 3, Date: "2026-08-24", HourSlot: 22, AnchorID: 1, AnchorName: "甲"},
		{ShopID: 3, Date: "2026-08-24", HourSlot: 7, AnchorID: 1, AnchorName: "甲"},
		{ShopID: 3, Date: "2026-08-30", HourSlot: 0, AnchorID: 1, AnchorName: "甲"},
		{ShopID: 3, Date: "2026-08-31", HourSlot: 0, AnchorID: 1, AnchorName: "甲"}, // 区间外
		{ShopID: 4, Date: "2026-08-24", HourSlot: 7, AnchorID: 1, AnchorName: "甲"}, // 别的店
	}
	for i := range cells {
		if err := repo.Upsert(ctx, &cells[i]); err != nil {
			t.Fatalf("写入失败: %v", err)
		}
	}

	entries, err := repo.ListRange(ctx, 3, "2026-08-24", "2026-08-30")
	if err != nil {
		t.Fatalf("ListRange 失败: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len = %d, want 4", len(entries))
	}
	// 按日期、时段排序
	if entries[0].Date != "2026-08-24" || entries[0].HourSlot != 7 {
		t.Errorf("排序错误: first = %s#%d", entries[0].Date, entries[0].HourSlot)
	}
	if entries[3].Date != "2026-08-30" {
		t.Errorf("闭区间右端点未包含: last = %s", entries[3].Date)
	}
}

func TestListByAnchor(t *testing.T) {
	_, repo := setupScheduleRepoTest(t)
	ctx := context.Background()

	repo.Upsert(ctx, &model.ScheduleEntry{ShopID: 5, Date: "2026-08-24", HourSlot: 10, AnchorID: 77, AnchorName: "甲"})
	repo.Upsert(ctx, &model.ScheduleEntry{ShopID: 6, Date: "2026-08-25", HourSlot: 11, AnchorID: 77, AnchorName: "甲"})
	repo.Upsert(ctx, &model.ScheduleEntry{ShopID: 5, Date: "2026-08-24", HourSlot: 11, AnchorID: 88, AnchorName: "乙"})

	entries, err := repo.ListByAnchor(ctx, 77, "2026-08-24", "2026-08-30")
	if err != nil {
		t.Fatalf("ListByAnchor 失败: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.AnchorID != 77 {
			t.Errorf("混入别的主播: %+v", e)
		}
	}
}

func TestScheduleTransaction_Rollback(t *testing.T) {
	db, repo := setupScheduleRepoTest(t)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(txRepo ScheduleRepository) error {
		if err := txRepo.Upsert(ctx, &model.ScheduleEntry{
			ShopID: 9, Date: "2026-08-24", HourSlot: 1, AnchorID: 1, AnchorName: "甲",
		}); err != nil {
			return err
		}
		return errors.New("强制回滚")
	})
	if err == nil {
		t.Fatalf("事务应返回错误")
	}

	var count int64
	db.Model(&model.ScheduleEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("回滚后不应有数据, count = %d", count)
	}
}

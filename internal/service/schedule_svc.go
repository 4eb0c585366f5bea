package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/realtime"
	"liveops_dev_v1_202608/internal/repository"
)

// ==================== 服务 ====================

var (
	ErrInvalidHourSlot = errors.New("时段必须在 0-23 之间")
	ErrNotOwnCell      = errors.New("只能填写自己的排班")
)

// ScheduleService 排班管理：管理员排班、主播复盘、周视图与导出
type ScheduleService struct {
	repo        repository.ScheduleRepository
	shopRepo    repository.ShopRepository
	profileRepo repository.ProfileRepository
	hub         *realtime.Hub
}

// NewScheduleService 创建排班服务
func NewScheduleService(
	repo repository.ScheduleRepository,
	shopRepo repository.ShopRepository,
	profileRepo repository.ProfileRepository,
	hub *realtime.Hub,
) *ScheduleService {
	return &ScheduleService{
		repo:        repo,
		shopRepo:    shopRepo,
		profileRepo: profileRepo,
		hub:         hub,
	}
}

// ==================== 排班 ====================

// Assign 管理员排班：空格子新增，已占用覆盖并清空旧复盘
// anchorID 为 0 等价于取消排班
func (s *ScheduleService) Assign(ctx context.Context, shopID int64, date string, hourSlot int, anchorID int64) error {
	if hourSlot < 0 || hourSlot > 23 {
		return ErrInvalidHourSlot
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return fmt.Errorf("无效的日期: %s", date)
	}

	if anchorID <= 0 {
		return s.Unassign(ctx, shopID, date, hourSlot)
	}

	anchor, err := s.profileRepo.GetByID(ctx, anchorID)
	if err != nil {
		return fmt.Errorf("主播不存在: %v", err)
	}
	anchorName := anchor.Username
	if anchorName == "" {
		anchorName = "Unknown"
	}

	entry := &model.ScheduleEntry{
		ShopID:     shopID,
		Date:       date,
		HourSlot:   hourSlot,
		AnchorID:   anchorID,
		AnchorName: anchorName,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}

	s.hub.Publish(realtime.ScheduleEvent{
		ShopID:   shopID,
		Date:     date,
		HourSlot: hourSlot,
		Action:   realtime.EventAssign,
	})
	return nil
}

// Unassign 取消排班，格子本就为空时静默成功
func (s *ScheduleService) Unassign(ctx context.Context, shopID int64, date string, hourSlot int) error {
	if hourSlot < 0 || hourSlot > 23 {
		return ErrInvalidHourSlot
	}
	if err := s.repo.DeleteCell(ctx, shopID, date, hourSlot); err != nil {
		return err
	}

	s.hub.Publish(realtime.ScheduleEvent{
		ShopID:   shopID,
		Date:     date,
		HourSlot: hourSlot,
		Action:   realtime.EventUnassign,
	})
	return nil
}

// ==================== 主播复盘 ====================

// Report 主播回填涨粉数和状态备注，只能写自己的格子
func (s *ScheduleService) Report(ctx context.Context, userID, shopID int64, date string, hourSlot int, fansAdded int, mood string) error {
	entry, err := s.repo.GetCell(ctx, shopID, date, hourSlot)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("该时段未排班")
		}
		return err
	}
	if entry.AnchorID != userID {
		return ErrNotOwnCell
	}

	if err := s.repo.UpdateReport(ctx, entry.ID, fansAdded, mood); err != nil {
		return err
	}

	s.hub.Publish(realtime.ScheduleEvent{
		ShopID:   shopID,
		Date:     date,
		HourSlot: hourSlot,
		Action:   realtime.EventReport,
	})
	return nil
}

// ==================== 周视图 ====================

// Week 返回以 weekStart（周一）起 7 天内的全部排班
func (s *ScheduleService) Week(ctx context.Context, shopID int64, weekStart string) ([]model.ScheduleEntry, error) {
	start, err := time.Parse(model.DateLayout, weekStart)
	if err != nil {
		return nil, fmt.Errorf("无效的周起始日期: %s", weekStart)
	}
	end := start.AddDate(0, 0, 6)
	return s.repo.ListRange(ctx, shopID, weekStart, end.Format(model.DateLayout))
}

// MyWeek 主播视角：一周内自己在全部店铺的排班
func (s *ScheduleService) MyWeek(ctx context.Context, anchorID int64, weekStart string) ([]model.ScheduleEntry, error) {
	start, err := time.Parse(model.DateLayout, weekStart)
	if err != nil {
		return nil, fmt.Errorf("无效的周起始日期: %s", weekStart)
	}
	end := start.AddDate(0, 0, 6)
	return s.repo.ListByAnchor(ctx, anchorID, weekStart, end.Format(model.DateLayout))
}

// ==================== 周表导出 ====================

var weekdayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ExportWeek 导出某店铺某周的排班 xlsx
// 首列时段，一天一列，格子内容 "主播名 +涨粉"，未排班为 "-"
func (s *ScheduleService) ExportWeek(ctx context.Context, shopID int64, weekStart string) ([]byte, error) {
	start, err := time.Parse(model.DateLayout, weekStart)
	if err != nil {
		return nil, fmt.Errorf("无效的周起始日期: %s", weekStart)
	}

	entries, err := s.Week(ctx, shopID, weekStart)
	if err != nil {
		return nil, err
	}

	// (date, hour) -> entry
	cellIndex := make(map[string]model.ScheduleEntry, len(entries))
	for _, e := range entries {
		cellIndex[fmt.Sprintf("%s#%d", e.Date, e.HourSlot)] = e
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	f.SetSheetName(f.GetSheetName(0), sheet)

	// 表头：时段 + 7 天
	_ = f.SetCellValue(sheet, "A1", "Time")
	days := make([]time.Time, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		days[i] = day
		col, _ := excelize.ColumnNumberToName(i + 2)
		label := fmt.Sprintf("%s (%s)", day.Format("01-02"), weekdayLabels[day.Weekday()])
		_ = f.SetCellValue(sheet, col+"1", label)
	}

	// 0-23 一行一个时段
	for hour := 0; hour < 24; hour++ {
		row := hour + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%02d:00", hour))

		for i, day := range days {
			col, _ := excelize.ColumnNumberToName(i + 2)
			cellRef := fmt.Sprintf("%s%d", col, row)

			entry, ok := cellIndex[fmt.Sprintf("%s#%d", day.Format(model.DateLayout), hour)]
			if !ok {
				_ = f.SetCellValue(sheet, cellRef, "-")
				continue
			}
			text := entry.AnchorName
			if entry.FansAdded != nil {
				text = fmt.Sprintf("%s +%d", entry.AnchorName, *entry.FansAdded)
			}
			_ = f.SetCellValue(sheet, cellRef, text)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("生成表格失败: %v", err)
	}
	return buf.Bytes(), nil
}

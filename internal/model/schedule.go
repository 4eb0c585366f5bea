package model

import "time"

// ScheduleEntry 排班格子，一格 = 某店铺某天某小时
// (shop_id, date, hour_slot) 唯一，排班即对该键 upsert
// 不走软删除：取消排班必须物理释放唯一键，否则重新排班会撞索引
type ScheduleEntry struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ShopID   int64  `gorm:"uniqueIndex:idx_shop_date_hour;not null"`
	Date     string `gorm:"size:10;uniqueIndex:idx_shop_date_hour;not null"` // YYYY-MM-DD
	HourSlot int    `gorm:"uniqueIndex:idx_shop_date_hour;not null"`         // 0-23

	AnchorID int64 `gorm:"index;not null"`
	// 冗余主播名，改名不回填历史排班
	AnchorName string `gorm:"size:100"`

	// 主播复盘数据，未填写时为 NULL
	FansAdded *int
	Mood      string `gorm:"size:255"`
}

func (ScheduleEntry) TableName() string {
	return "schedule_entries"
}

// DateLayout 排班日期格式
const DateLayout = "2006-01-02"

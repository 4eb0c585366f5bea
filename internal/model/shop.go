package model

// Shop 直播店铺，按国家市场划分
type Shop struct {
	BaseModel
	Name    string `gorm:"size:100;not null"`
	Country string `gorm:"size:10;index;not null"` // CN / VN / TH / MY / PH

	// 删除店铺时级联清理排班
	Schedules []ScheduleEntry `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
}

func (Shop) TableName() string {
	return "shops"
}

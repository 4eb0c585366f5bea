package model

import "time"

// 系统角色
const (
	RoleAdmin  = "admin"  // 运营管理员
	RoleAnchor = "anchor" // 主播
)

// Profile 用户档案（主播 / 管理员）
type Profile struct {
	BaseModel
	Email    string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt 哈希
	Username string `gorm:"size:100;index"`
	Role     string `gorm:"size:20;default:'anchor';index"`
	Country  string `gorm:"size:10;index"` // CN / VN / TH / MY / PH

	IsActive bool `gorm:"default:true"`

	// 登录痕迹
	LastLoginAt *time.Time
	LastLoginIP string `gorm:"size:45"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ActivityLog 关键动作流水（登录、批量导入等）
type ActivityLog struct {
	BaseModel
	UserID int64  `gorm:"index"`
	Action string `gorm:"size:50;index"`
	Detail string `gorm:"type:text"`
	IP     string `gorm:"size:45"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// 动作常量
const (
	ActionLogin       = "login"
	ActionRegister    = "register"
	ActionImport      = "product_import"
	ActionBulkEmail   = "bulk_email"
	ActionFixUsername = "fix_username"
)

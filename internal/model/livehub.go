package model

import "gorm.io/datatypes"

// 直播中心内容分类
const (
	LiveHubPolicy   = "policy"   // 规章制度
	LiveHubActivity = "activity" // 直播活动
	LiveHubTutorial = "tutorial" // 操作流程
	LiveHubNotice   = "notice"   // 重要通知
)

// LiveHubCategories 合法分类集合
var LiveHubCategories = map[string]bool{
	LiveHubPolicy:   true,
	LiveHubActivity: true,
	LiveHubTutorial: true,
	LiveHubNotice:   true,
}

// LiveHubContent 直播中心文档
// Data 的结构由 Category 决定，写入和读取都要过校验
type LiveHubContent struct {
	BaseModel
	Category string `gorm:"size:20;index;not null"`
	Title    string `gorm:"size:255;not null"`

	Data datatypes.JSON `gorm:"type:jsonb"`

	CreatedBy int64 `gorm:"index"`
}

func (LiveHubContent) TableName() string {
	return "live_hub_contents"
}

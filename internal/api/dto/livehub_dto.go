package dto

import "encoding/json"

// ==================== 直播中心内容 ====================

// CreateLiveHubReq 发布内容请求
// Data 的结构由 category 决定，服务端按分类校验
type CreateLiveHubReq struct {
	Category string          `json:"category" binding:"required,oneof=policy activity tutorial notice"`
	Title    string          `json:"title" binding:"required,max=200"`
	Data     json.RawMessage `json:"data" binding:"required"`
}

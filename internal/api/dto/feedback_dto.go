package dto

// ==================== 反馈提交 ====================

// CreateFeedbackReq 提交反馈请求
// sample 分类必须附 product_id 或至少一张图片
type CreateFeedbackReq struct {
	Category    string   `json:"category" binding:"required,oneof=sample live_issue after_sales other"`
	Content     string   `json:"content" binding:"required,max=5000"`
	Images      []string `json:"images" binding:"omitempty,max=9"`
	ProductID   *int64   `json:"product_id"`
	IsAnonymous bool     `json:"is_anonymous"`
}

// ==================== 反馈处理 ====================

// ReplyFeedbackReq 管理员回复请求
type ReplyFeedbackReq struct {
	Reply         string `json:"reply" binding:"required,max=5000"`
	LogisticsInfo string `json:"logistics_info" binding:"omitempty,max=500"`
}

// FeedbackListReq 反馈列表请求
type FeedbackListReq struct {
	Category  string `form:"category" binding:"omitempty,oneof=sample live_issue after_sales other"`
	Country   string `form:"country"`
	Processed *bool  `form:"processed"`
	Mine      bool   `form:"mine"` // 只看自己提交的
	Page      int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,gte=1,lte=100"`
}

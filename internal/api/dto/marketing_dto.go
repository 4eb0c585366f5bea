package dto

// ==================== 批量邮件 ====================

// BulkEmailReq 批量邮件请求
// 按国家/关键字圈定主播收件人
type BulkEmailReq struct {
	Country string `json:"country" binding:"omitempty,max=10"`
	Keyword string `json:"keyword" binding:"omitempty,max=100"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required,max=20000"`
}

// BulkEmailResp 批量邮件结果
type BulkEmailResp struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

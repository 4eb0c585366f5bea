package dto

// ==================== 店铺管理 ====================

// CreateShopReq 创建店铺请求
type CreateShopReq struct {
	Name    string `json:"name" binding:"required,max=100"`
	Country string `json:"country" binding:"omitempty,max=10"`
}

// UpdateShopReq 更新店铺请求
type UpdateShopReq struct {
	Name    string `json:"name" binding:"omitempty,max=100"`
	Country string `json:"country" binding:"omitempty,max=10"`
}

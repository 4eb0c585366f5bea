package dto

// ==================== 请求 DTO ====================

// CreateProductReq 创建商品请求
// 三个字段传中文原文，入库前自动翻译为六语
type CreateProductReq struct {
	SKU      string `json:"sku" binding:"required,max=64"`
	Name     string `json:"name" binding:"required,max=200"`
	Size     string `json:"size" binding:"omitempty,max=200"`
	Features string `json:"features" binding:"omitempty,max=2000"`
}

// UpdateProductFieldReq 更新单个文本字段请求
// 传中文原文，重新翻译后整体覆盖该字段的六语内容
type UpdateProductFieldReq struct {
	Field string `json:"field" binding:"required,oneof=name size features"`
	Value string `json:"value" binding:"required,max=2000"`
}

// ProductListReq 商品列表请求
type ProductListReq struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,gte=1,lte=100"`
}

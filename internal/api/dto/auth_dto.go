package dto

import "time"

// ==================== 注册 ====================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=100"`
	Username   string `json:"username" binding:"omitempty,max=50"`
	Country    string `json:"country" binding:"omitempty,max=10"`
	SignupCode string `json:"signup_code"` // 管理员注册码，普通用户留空
}

// ==================== 登录 ====================

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *ProfileInfo `json:"user"`
}

// ==================== Token 刷新 ====================

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ==================== 用户档案 ====================

// ProfileInfo 用户档案信息
type ProfileInfo struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	Country     string     `json:"country"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProfileListRequest 用户列表请求
type ProfileListRequest struct {
	Role     string `form:"role" binding:"omitempty,oneof=admin anchor"`
	Country  string `form:"country"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,gte=1,lte=100"`
}

// ActivityListReq 动作流水查询请求
type ActivityListReq struct {
	UserID int64  `form:"user_id" binding:"omitempty,gte=1"`
	Action string `form:"action"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=500"`
}

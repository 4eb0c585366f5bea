package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// toProfileInfo 档案转视图
func toProfileInfo(p *model.Profile) *dto.ProfileInfo {
	return &dto.ProfileInfo{
		ID:          p.ID,
		Email:       p.Email,
		Username:    p.Username,
		Role:        p.Role,
		Country:     p.Country,
		IsActive:    p.IsActive,
		LastLoginAt: p.LastLoginAt,
		CreatedAt:   p.CreatedAt,
	}
}

// ==================== 注册登录 ====================

// Register 注册账号
// @Summary 注册账号，注册码匹配时授予管理员角色
// @Tags Auth
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 200 {object} dto.ProfileInfo
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	profile, err := ctrl.authService.Register(c.Request.Context(), &service.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Username:   req.Username,
		Country:    req.Country,
		SignupCode: req.SignupCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(409, gin.H{"code": 409, "message": "邮箱已注册"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "注册失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toProfileInfo(profile)})
}

// Login 登录
// @Summary 邮箱密码登录，返回 Token 对
// @Tags Auth
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	profile, pair, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(401, gin.H{"code": 401, "message": "邮箱或密码错误"})
			return
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			c.JSON(403, gin.H{"code": 403, "message": "账号已停用"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "登录失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toProfileInfo(profile),
	}})
}

// Refresh 刷新 Token
// @Summary 用 Refresh Token 换取新 Token 对
// @Tags Auth
// @Param body body dto.RefreshTokenRequest true "刷新请求"
// @Success 200 {object} dto.RefreshTokenResponse
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	pair, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(401, gin.H{"code": 401, "message": "Token 无效或已过期"})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}})
}

// ==================== 当前用户 ====================

// Me 获取当前用户档案
// @Summary 获取当前登录用户的档案
// @Tags Auth
// @Success 200 {object} dto.ProfileInfo
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := ctrl.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "用户不存在"})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toProfileInfo(profile)})
}

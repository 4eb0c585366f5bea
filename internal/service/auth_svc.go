package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/config"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/pkg/logger"
)

// ==================== 服务 ====================

var (
	ErrEmailTaken      = errors.New("邮箱已注册")
	ErrBadCredentials  = errors.New("邮箱或密码错误")
	ErrAccountDisabled = errors.New("账号已停用")
)

// AuthService 注册登录与用户档案
type AuthService struct {
	profileRepo repository.ProfileRepository
	logRepo     repository.ActivityLogRepository
	adminCfg    *config.AdminConfig
}

// NewAuthService 创建认证服务
func NewAuthService(profileRepo repository.ProfileRepository, logRepo repository.ActivityLogRepository, adminCfg *config.AdminConfig) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		logRepo:     logRepo,
		adminCfg:    adminCfg,
	}
}

// ==================== 注册 ====================

// RegisterInput 注册参数
type RegisterInput struct {
	Email      string
	Password   string
	Username   string
	Country    string
	SignupCode string // 与配置的管理员注册码匹配才授予 admin
}

// Register 注册账号
// 角色判定只看注册码，管理员名单不再散落各处
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, errors.New("邮箱和密码不能为空")
	}

	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.RoleAnchor
	if s.adminCfg.SignupCode != "" && in.SignupCode == s.adminCfg.SignupCode {
		role = model.RoleAdmin
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		// 默认用户名取邮箱前缀
		username = strings.SplitN(email, "@", 2)[0]
	}

	profile := &model.Profile{
		Email:    email,
		Password: string(hashed),
		Username: username,
		Role:     role,
		Country:  in.Country,
		IsActive: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.record(ctx, profile.ID, model.ActionRegister, "", "")
	return profile, nil
}

// ==================== 登录 ====================

// TokenPair 登录返回的令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login 校验密码并签发令牌，同时落登录痕迹
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*model.Profile, *TokenPair, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, err
	}
	if !profile.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)) != nil {
		return nil, nil, ErrBadCredentials
	}

	access, refresh, err := middleware.GenerateTokenPair(profile.ID, profile.Username, profile.Role)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := s.profileRepo.TouchLogin(ctx, profile.ID, ip, now); err != nil {
		// 登录痕迹失败不阻断登录
		logger.L().Warnf("记录登录痕迹失败: user=%d err=%v", profile.ID, err)
	}
	s.record(ctx, profile.ID, model.ActionLogin, "", ip)

	return profile, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh 用 refresh token 换新令牌对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, errors.New("refresh token 无效")
	}

	// 重新读档案，角色变更或停用即时生效
	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, ErrAccountDisabled
	}

	access, refresh, err := middleware.GenerateTokenPair(profile.ID, profile.Username, profile.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// GetProfile 取用户档案
func (s *AuthService) GetProfile(ctx context.Context, id int64) (*model.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

// ListProfiles 用户列表（管理员）
func (s *AuthService) ListProfiles(ctx context.Context, filter repository.ProfileFilter) ([]model.Profile, int64, error) {
	return s.profileRepo.List(ctx, filter)
}

// ==================== 批量修复用户名 ====================

// FixUsernames 把空用户名批量回填为邮箱前缀，返回修复条数
func (s *AuthService) FixUsernames(ctx context.Context, operatorID int64) (int, error) {
	profiles, err := s.profileRepo.ListWithEmptyUsername(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, p := range profiles {
		username := strings.SplitN(p.Email, "@", 2)[0]
		if username == "" {
			continue
		}
		if err := s.profileRepo.UpdateFields(ctx, p.ID, map[string]interface{}{"username": username}); err != nil {
			logger.L().Warnf("修复用户名失败: user=%d err=%v", p.ID, err)
			continue
		}
		fixed++
	}

	s.record(ctx, operatorID, model.ActionFixUsername, "", "")
	return fixed, nil
}

// record 写动作流水，失败只记日志
func (s *AuthService) record(ctx context.Context, userID int64, action, detail, ip string) {
	entry := &model.ActivityLog{
		UserID: userID,
		Action: action,
		Detail: detail,
		IP:     ip,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		logger.L().Warnf("写动作流水失败: action=%s err=%v", action, err)
	}
}

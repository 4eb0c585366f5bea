package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"liveops_dev_v1_202608/internal/config"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupAuthTest(t *testing.T) (*gorm.DB, *AuthService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Profile{}, &model.ActivityLog{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	svc := NewAuthService(
		repository.NewProfileRepository(db),
		repository.NewActivityLogRepository(db),
		&config.AdminConfig{SignupCode: "LIVEOPS-ADMIN-2026"},
	)
	return db, svc
}

// ==================== 注册 ====================

func TestRegister_RoleBySignupCode(t *testing.T) {
	_, svc := setupAuthTest(t)
	ctx := context.Background()

	anchor, err := svc.Register(ctx, &RegisterInput{Email: "Anchor@Example.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if anchor.Role != model.RoleAnchor {
		t.Errorf("无注册码应为主播, got %q", anchor.Role)
	}
	if anchor.Email != "anchor@example.com" {
		t.Errorf("邮箱应小写化, got %q", anchor.Email)
	}
	if anchor.Username != "anchor" {
		t.Errorf("默认用户名应取邮箱前缀, got %q", anchor.Username)
	}
	if anchor.Password == "pw123456" {
		t.Errorf("密码不应明文落库")
	}

	admin, err := svc.Register(ctx, &RegisterInput{
		Email:      "boss@example.com",
		Password:   "pw123456",
		Username:   "老板",
		SignupCode: "LIVEOPS-ADMIN-2026",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("注册码匹配应为管理员, got %q", admin.Role)
	}

	fake, err := svc.Register(ctx, &RegisterInput{
		Email:      "fake@example.com",
		Password:   "pw123456",
		SignupCode: "WRONG-CODE",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if fake.Role != model.RoleAnchor {
		t.Errorf("错误注册码不应提权, got %q", fake.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := setupAuthTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{Email: "dup@example.com", Password: "pw"}); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if _, err := svc.Register(ctx, &RegisterInput{Email: "DUP@example.com", Password: "pw"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("重复邮箱应拒绝, got %v", err)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	_, svc := setupAuthTest(t)

	if _, err := svc.Register(context.Background(), &RegisterInput{Email: "  ", Password: "pw"}); err == nil {
		t.Errorf("空邮箱应拒绝")
	}
	if _, err := svc.Register(context.Background(), &RegisterInput{Email: "a@b.com", Password: ""}); err == nil {
		t.Errorf("空密码应拒绝")
	}
}

// ==================== 登录 ====================

func TestLogin(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{Email: "login@example.com", Password: "secret88"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	profile, pair, err := svc.Login(ctx, "login@example.com", "secret88", "10.0.0.1")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Errorf("令牌对不完整: %+v", pair)
	}

	// 登录痕迹
	var stored model.Profile
	db.First(&stored, profile.ID)
	if stored.LastLoginIP != "10.0.0.1" || stored.LastLoginAt == nil {
		t.Errorf("登录痕迹未落库: ip=%q at=%v", stored.LastLoginIP, stored.LastLoginAt)
	}

	if _, _, err := svc.Login(ctx, "login@example.com", "wrong", ""); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("错误密码应拒绝, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@example.com", "secret88", ""); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("不存在的账号应报同样的错, got %v", err)
	}

	db.Model(&model.Profile{}).Where("id = ?", profile.ID).Update("is_active", false)
	if _, _, err := svc.Login(ctx, "login@example.com", "secret88", ""); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("停用账号应拒绝, got %v", err)
	}
}

// ==================== 刷新令牌 ====================

func TestRefresh(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()

	profile, pair, _ := func() (*model.Profile, *TokenPair, error) {
		svc.Register(ctx, &RegisterInput{Email: "refresh@example.com", Password: "pw123456"})
		return svc.Login(ctx, "refresh@example.com", "pw123456", "")
	}()

	newPair, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	claims, err := middleware.ParseToken(newPair.AccessToken)
	if err != nil || claims.UserID != profile.ID {
		t.Errorf("新令牌解析失败: %v", err)
	}

	// access token 不能当 refresh token 用
	if _, err := svc.Refresh(ctx, pair.AccessToken); err == nil {
		t.Errorf("access token 换新应拒绝")
	}

	db.Model(&model.Profile{}).Where("id = ?", profile.ID).Update("is_active", false)
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("停用账号刷新应拒绝, got %v", err)
	}
}

// ==================== 修复用户名 ====================

func TestFixUsernames(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()

	profiles := []model.Profile{
		{Email: "empty1@example.com", Password: "x", Username: "", Role: model.RoleAnchor, IsActive: true},
		{Email: "empty2@example.com", Password: "x", Username: "", Role: model.RoleAnchor, IsActive: true},
		{Email: "ok@example.com", Password: "x", Username: "已有名字", Role: model.RoleAnchor, IsActive: true},
	}
	for i := range profiles {
		if err := db.Create(&profiles[i]).Error; err != nil {
			t.Fatalf("建用户失败: %v", err)
		}
	}

	fixed, err := svc.FixUsernames(ctx, 1)
	if err != nil {
		t.Fatalf("修复失败: %v", err)
	}
	if fixed != 2 {
		t.Errorf("fixed = %d, want 2", fixed)
	}

	var p model.Profile
	db.Where("email = ?", "empty1@example.com").First(&p)
	if p.Username != "empty1" {
		t.Errorf("用户名未回填: %q", p.Username)
	}
	p = model.Profile{}
	db.Where("email = ?", "ok@example.com").First(&p)
	if p.Username != "已有名字" {
		t.Errorf("已有用户名不应被改写: %q", p.Username)
	}
}

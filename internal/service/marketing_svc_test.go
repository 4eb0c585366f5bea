package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

// fakeSender 记录发送请求，可按收件人定向失败
type fakeSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	if f.failFor[to] {
		return errors.New("smtp 连接被拒")
	}
	f.sent = append(f.sent, to)
	return nil
}

func setupMarketingTest(t *testing.T) (*gorm.DB, *MarketingService, *fakeSender) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Profile{}, &model.ActivityLog{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	sender := &fakeSender{failFor: map[string]bool{}}
	svc := NewMarketingService(
		repository.NewProfileRepository(db),
		repository.NewActivityLogRepository(db),
		sender,
	)
	return db, svc, sender
}

func seedMailTarget(t *testing.T, db *gorm.DB, email, role, country string) {
	p := &model.Profile{
		Email:    email,
		Password: "x",
		Username: strings.SplitN(email, "@", 2)[0],
		Role:     role,
		Country:  country,
		IsActive: true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("建用户失败: %v", err)
	}
}

// ==================== 单元测试 ====================

func TestSendBulk_AnchorTargeting(t *testing.T) {
	db, svc, sender := setupMarketingTest(t)
	ctx := context.Background()

	seedMailTarget(t, db, "vn1@example.com", model.RoleAnchor, "VN")
	seedMailTarget(t, db, "vn2@example.com", model.RoleAnchor, "VN")
	seedMailTarget(t, db, "th1@example.com", model.RoleAnchor, "TH")
	// 管理员不在推送范围
	seedMailTarget(t, db, "admin@example.com", model.RoleAdmin, "VN")

	result, err := svc.SendBulk(ctx, 1, &BulkEmailInput{
		Country: "VN",
		Subject: "本周开播安排",
		Body:    "<p>详情见后台</p>",
	})
	if err != nil {
		t.Fatalf("群发失败: %v", err)
	}
	if result.Total != 2 || result.Sent != 2 || result.Failed != 0 {
		t.Errorf("结果 = %+v, want Total=2 Sent=2", result)
	}
	for _, to := range sender.sent {
		if to == "admin@example.com" || to == "th1@example.com" {
			t.Errorf("发给了范围外收件人: %s", to)
		}
	}
}

func TestSendBulk_PartialFailure(t *testing.T) {
	db, svc, sender := setupMarketingTest(t)
	ctx := context.Background()

	seedMailTarget(t, db, "ok@example.com", model.RoleAnchor, "")
	seedMailTarget(t, db, "bad@example.com", model.RoleAnchor, "")
	sender.failFor["bad@example.com"] = true

	result, err := svc.SendBulk(ctx, 1, &BulkEmailInput{Subject: "通知", Body: "正文"})
	if err != nil {
		t.Fatalf("群发失败: %v", err)
	}
	if result.Total != 2 || result.Sent != 1 || result.Failed != 1 {
		t.Errorf("结果 = %+v, want Sent=1 Failed=1", result)
	}

	// 汇总落动作流水
	var log model.ActivityLog
	if err := db.Where("action = ?", model.ActionBulkEmail).First(&log).Error; err != nil {
		t.Fatalf("动作流水未落库: %v", err)
	}
	if !strings.Contains(log.Detail, "sent=1") || !strings.Contains(log.Detail, "failed=1") {
		t.Errorf("流水明细错误: %q", log.Detail)
	}
}

func TestSendBulk_EmptySubject(t *testing.T) {
	_, svc, _ := setupMarketingTest(t)

	if _, err := svc.SendBulk(context.Background(), 1, &BulkEmailInput{Subject: "", Body: "x"}); err == nil {
		t.Errorf("空主题应拒绝")
	}
}

func TestSendBulk_ContextCancelled(t *testing.T) {
	db, svc, _ := setupMarketingTest(t)

	seedMailTarget(t, db, "c1@example.com", model.RoleAnchor, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.SendBulk(ctx, 1, &BulkEmailInput{Subject: "s", Body: "b"}); err == nil {
		t.Errorf("已取消上下文应中断")
	}
}

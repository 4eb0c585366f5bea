package service

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupLiveHubTest(t *testing.T) (*gorm.DB, *LiveHubService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.LiveHubContent{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db, NewLiveHubService(repository.NewLiveHubRepository(db))
}

// ==================== 单元测试 ====================

func TestLiveHubCreate_PayloadValidation(t *testing.T) {
	_, svc := setupLiveHubTest(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		category string
		data     string
		wantErr  bool
	}{
		{"制度正文必填", model.LiveHubPolicy, `{"content":""}`, true},
		{"制度正常", model.LiveHubPolicy, `{"content":"直播期间禁止挂机"}`, false},
		{"活动缺店铺", model.LiveHubActivity, `{"content":"大促","target_country":"VN"}`, true},
		{"活动缺国家", model.LiveHubActivity, `{"content":"大促","target_shop_id":3}`, true},
		{"活动正常", model.LiveHubActivity, `{"content":"大促","target_country":"VN","target_shop_id":3,"coupon_count":100}`, false},
		{"流程缺项目名", model.LiveHubTutorial, `{"steps_text":"第一步"}`, true},
		{"流程正常", model.LiveHubTutorial, `{"project_name":"小黄车挂链接","steps_text":"第一步"}`, false},
		{"通知正文必填", model.LiveHubNotice, `{"content":""}`, true},
		{"通知正常", model.LiveHubNotice, `{"content":"今晚八点全员开播"}`, false},
		{"未知分类", "gossip", `{"content":"x"}`, true},
		{"非法 JSON", model.LiveHubPolicy, `{content}`, true},
	}

	for _, tc := range cases {
		_, err := svc.Create(ctx, 1, tc.category, "标题", json.RawMessage(tc.data))
		if tc.wantErr && err == nil {
			t.Errorf("%s: 应报错", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: 不应报错, got %v", tc.name, err)
		}
	}
}

func TestLiveHubCreate_EmptyTitle(t *testing.T) {
	_, svc := setupLiveHubTest(t)

	_, err := svc.Create(context.Background(), 1, model.LiveHubNotice, "", json.RawMessage(`{"content":"正文"}`))
	if err == nil {
		t.Errorf("空标题应拒绝")
	}
}

func TestLiveHubList_SkipsCorruptRows(t *testing.T) {
	db, svc := setupLiveHubTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, model.LiveHubTutorial, "挂车教程",
		json.RawMessage(`{"project_name":"小黄车","steps_text":"打开后台"}`)); err != nil {
		t.Fatalf("发布失败: %v", err)
	}

	// 绕过服务层直接塞一条结构损坏的旧数据
	corrupt := &model.LiveHubContent{
		Category: model.LiveHubTutorial,
		Title:    "坏数据",
		Data:     []byte(`{"steps_text":"没有项目名"}`),
	}
	if err := db.Create(corrupt).Error; err != nil {
		t.Fatalf("插入坏数据失败: %v", err)
	}

	contents, err := svc.ListByCategory(ctx, model.LiveHubTutorial)
	if err != nil {
		t.Fatalf("ListByCategory 失败: %v", err)
	}
	if len(contents) != 1 || contents[0].Title != "挂车教程" {
		t.Errorf("坏数据应被跳过: %+v", contents)
	}
}

func TestLiveHubList_BadCategory(t *testing.T) {
	_, svc := setupLiveHubTest(t)

	if _, err := svc.ListByCategory(context.Background(), "unknown"); err == nil {
		t.Errorf("未知分类应报错")
	}
}

func TestLiveHubDelete(t *testing.T) {
	db, svc := setupLiveHubTest(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 2, model.LiveHubPolicy, "守则", json.RawMessage(`{"content":"准时开播"}`))
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	var count int64
	db.Model(&model.LiveHubContent{}).Count(&count)
	if count != 0 {
		t.Errorf("删除后仍有 %d 条", count)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/pkg/logger"
)

// ==================== 分类负载 ====================

// PolicyPayload 规章制度：纯正文
type PolicyPayload struct {
	Content string `json:"content"`
}

// ActivityPayload 直播活动：绑定国家/店铺，带档期和优惠信息
type ActivityPayload struct {
	Content        string   `json:"content"`
	TargetCountry  string   `json:"target_country"`
	TargetShopID   int64    `json:"target_shop_id"`
	TargetShopName string   `json:"target_shop_name"`
	ProductSKUs    []string `json:"product_skus"`
	ActivityCode   string   `json:"activity_code"`
	CouponCount    int      `json:"coupon_count"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
}

// TutorialPayload 操作流程：项目名 + 步骤说明 + 步骤图
type TutorialPayload struct {
	ProjectName string   `json:"project_name"`
	StepsText   string   `json:"steps_text"`
	StepImages  []string `json:"step_images"`
	Notes       string   `json:"notes"`
	Content     string   `json:"content"` // 兼容列表展示
}

// NoticePayload 重要通知：纯正文
type NoticePayload struct {
	Content string `json:"content"`
}

// validatePayload 按分类校验负载结构，写入和读出共用
func validatePayload(category string, data []byte) error {
	switch category {
	case model.LiveHubPolicy:
		var p PolicyPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.Content == "" {
			return errors.New("制度正文不能为空")
		}
	case model.LiveHubActivity:
		var p ActivityPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.TargetCountry == "" || p.TargetShopID <= 0 {
			return errors.New("活动必须指定国家和店铺")
		}
	case model.LiveHubTutorial:
		var p TutorialPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.ProjectName == "" {
			return errors.New("项目名称必填")
		}
	case model.LiveHubNotice:
		var p NoticePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.Content == "" {
			return errors.New("通知正文不能为空")
		}
	default:
		return fmt.Errorf("无效的内容分类: %s", category)
	}
	return nil
}

// ==================== 服务 ====================

// LiveHubService 直播中心内容管理
// 负载是按分类区分的 JSON 文档，进出都要过结构校验
type LiveHubService struct {
	repo repository.LiveHubRepository
}

// NewLiveHubService 创建直播中心服务
func NewLiveHubService(repo repository.LiveHubRepository) *LiveHubService {
	return &LiveHubService{repo: repo}
}

// Create 发布内容，负载不符合分类结构直接拒绝
func (s *LiveHubService) Create(ctx context.Context, userID int64, category, title string, data json.RawMessage) (*model.LiveHubContent, error) {
	if title == "" {
		return nil, errors.New("标题不能为空")
	}
	if err := validatePayload(category, data); err != nil {
		return nil, err
	}

	content := &model.LiveHubContent{
		Category:  category,
		Title:     title,
		Data:      datatypes.JSON(data),
		CreatedBy: userID,
	}
	if err := s.repo.Create(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// ListByCategory 按分类拉取内容
// 库里结构损坏的旧数据过滤掉并记警告，不能因为一条坏数据整页打不开
func (s *LiveHubService) ListByCategory(ctx context.Context, category string) ([]model.LiveHubContent, error) {
	if !model.LiveHubCategories[category] {
		return nil, fmt.Errorf("无效的内容分类: %s", category)
	}

	contents, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	valid := make([]model.LiveHubContent, 0, len(contents))
	for _, c := range contents {
		if err := validatePayload(c.Category, c.Data); err != nil {
			logger.L().Warnf("直播中心内容结构损坏，已跳过: id=%d err=%v", c.ID, err)
			continue
		}
		valid = append(valid, c)
	}
	return valid, nil
}

// Delete 删除内容
func (s *LiveHubService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

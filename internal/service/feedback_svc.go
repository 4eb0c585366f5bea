package service

import (
	"context"
	"errors"
	"strings"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
)

// ==================== 服务 ====================

var (
	ErrEmptyContent     = errors.New("反馈内容不能为空")
	ErrBadCategory      = errors.New("无效的反馈分类")
	ErrSampleNeedsProof = errors.New("样品反馈必须关联产品或附图")
)

// FeedbackService 主播反馈工单
type FeedbackService struct {
	repo        repository.FeedbackRepository
	profileRepo repository.ProfileRepository
}

// NewFeedbackService 创建反馈服务
func NewFeedbackService(repo repository.FeedbackRepository, profileRepo repository.ProfileRepository) *FeedbackService {
	return &FeedbackService{repo: repo, profileRepo: profileRepo}
}

// ==================== 提交 ====================

// CreateInput 提交反馈参数
type CreateInput struct {
	Category    string
	Content     string
	Images      []string
	ProductID   *int64
	IsAnonymous bool
}

// Create 提交反馈，落库前做分类规则校验
func (s *FeedbackService) Create(ctx context.Context, userID int64, in *CreateInput) (*model.Feedback, error) {
	if !model.FeedbackCategories[in.Category] {
		return nil, ErrBadCategory
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyContent
	}
	// 样品问题必须有凭证
	if in.Category == model.FeedbackCategorySample && in.ProductID == nil && len(in.Images) == 0 {
		return nil, ErrSampleNeedsProof
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		UserID:      userID,
		Country:     profile.Country,
		Category:    in.Category,
		Content:     strings.TrimSpace(in.Content),
		Images:      in.Images,
		ProductID:   in.ProductID,
		IsAnonymous: in.IsAnonymous,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// ==================== 查询 ====================

// FeedbackView 对外展示的反馈，匿名时作者名被遮蔽
type FeedbackView struct {
	model.Feedback
	AuthorName string `json:"author_name"`
	Processed  bool   `json:"processed"`
}

// List 反馈列表
// 匿名反馈的展示名统一替换为占位符，user_id 不外泄
func (s *FeedbackService) List(ctx context.Context, filter repository.FeedbackFilter) ([]FeedbackView, int64, error) {
	feedbacks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// 批量取作者名，避免 N+1
	authorIDs := make(map[int64]bool)
	for _, f := range feedbacks {
		if !f.IsAnonymous {
			authorIDs[f.UserID] = true
		}
	}
	names := make(map[int64]string, len(authorIDs))
	for id := range authorIDs {
		if p, err := s.profileRepo.GetByID(ctx, id); err == nil {
			names[id] = p.Username
		}
	}

	views := make([]FeedbackView, 0, len(feedbacks))
	for _, f := range feedbacks {
		view := FeedbackView{
			Feedback:  f,
			Processed: f.Reply != "",
		}
		if f.IsAnonymous {
			view.AuthorName = model.AnonymousLabel
			// 匿名帖对外抹掉作者 ID
			view.UserID = 0
		} else {
			view.AuthorName = names[f.UserID]
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ==================== 管理员处理 ====================

// Reply 管理员回复反馈，可附补发物流单号
// 回复非空后该工单即视为已处理
func (s *FeedbackService) Reply(ctx context.Context, id int64, reply, logisticsInfo string) error {
	if strings.TrimSpace(reply) == "" {
		return ErrEmptyContent
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Reply(ctx, id, strings.TrimSpace(reply), strings.TrimSpace(logisticsInfo))
}

// Delete 删除反馈
func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"liveops_dev_v1_202608/internal/config"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/pkg/logger"
)

// ==================== 服务 ====================

// MailSender 邮件发送接口，测试时注入假实现
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// smtpSender 基于 gomail 的 SMTP 实现
type smtpSender struct {
	cfg *config.SMTPConfig
}

// NewSMTPSender 创建 SMTP 发送器
func NewSMTPSender(cfg *config.SMTPConfig) MailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

// MarketingService 面向主播群体的批量邮件推送
type MarketingService struct {
	profileRepo repository.ProfileRepository
	logRepo     repository.ActivityLogRepository
	sender      MailSender
}

// NewMarketingService 创建营销服务
func NewMarketingService(profileRepo repository.ProfileRepository, logRepo repository.ActivityLogRepository, sender MailSender) *MarketingService {
	return &MarketingService{
		profileRepo: profileRepo,
		logRepo:     logRepo,
		sender:      sender,
	}
}

// ==================== 群发 ====================

// BulkEmailInput 群发参数，按国家/关键字圈定收件人
type BulkEmailInput struct {
	Country string
	Keyword string
	Subject string
	Body    string // 正文，可以是纯文本或一个链接
}

// BulkEmailResult 群发结果
type BulkEmailResult struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendBulk 逐个发送，单个失败不中断，最后汇总
func (s *MarketingService) SendBulk(ctx context.Context, operatorID int64, in *BulkEmailInput) (*BulkEmailResult, error) {
	if in.Subject == "" || in.Body == "" {
		return nil, fmt.Errorf("主题和正文不能为空")
	}

	profiles, _, err := s.profileRepo.List(ctx, repository.ProfileFilter{
		Role:     model.RoleAnchor,
		Country:  in.Country,
		Keyword:  in.Keyword,
		PageSize: 1000,
	})
	if err != nil {
		return nil, err
	}

	result := &BulkEmailResult{Total: len(profiles)}
	for _, p := range profiles {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.sender.Send(p.Email, in.Subject, in.Body); err != nil {
			logger.L().Warnf("邮件发送失败: to=%s err=%v", p.Email, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	entry := &model.ActivityLog{
		UserID: operatorID,
		Action: model.ActionBulkEmail,
		Detail: fmt.Sprintf("subject=%s sent=%d failed=%d", in.Subject, result.Sent, result.Failed),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		logger.L().Warnf("写动作流水失败: %v", err)
	}

	return result, nil
}

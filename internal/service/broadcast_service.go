package service

import (
	"context"
	"log"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/pkg"
	"Aurora_Admin/internal/repository/mysql"
)

type broadcastStore interface {
	Create(ctx context.Context, b *model.Broadcast) error
	UpdateCounts(ctx context.Context, id uint64, sent, failed int) error
	List(ctx context.Context, offset, limit int) ([]model.Broadcast, error)
}

type recipientLookup interface {
	ListEmails(ctx context.Context, activeOnly bool) ([]string, error)
}

type BroadcastService struct {
	repo     broadcastStore
	users    recipientLookup
	emailCfg pkg.SMTPConfig
	audit    auditRecorder
	deliver  func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error
}

func NewBroadcastService(repo *mysql.BroadcastRepository, users *mysql.UserRepository, emailCfg pkg.SMTPConfig, audit *AuditService) *BroadcastService {
	return &BroadcastService{repo: repo, users: users, emailCfg: emailCfg, audit: audit, deliver: pkg.SendEmail}
}

// Send 逐个收件人顺序投递：单封失败只计数，不中断整批。
// 没有重试，投递结果记在广播记录上。
func (s *BroadcastService) Send(ctx context.Context, adminEmail, subject, body, audience string) (*model.Broadcast, error) {
	if subject == "" || body == "" {
		return nil, ErrInvalidParams
	}
	if audience != "all" && audience != "active" {
		return nil, ErrInvalidParams
	}

	b := &model.Broadcast{
		Subject:   subject,
		Body:      body,
		Audience:  audience,
		CreatedBy: adminEmail,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	emails, err := s.users.ListEmails(ctx, audience == "active")
	if err != nil {
		return nil, err
	}

	html := pkg.BroadcastHTML(body)
	sent, failed := 0, 0
	for _, to := range emails {
		if err := s.deliver(s.emailCfg, to, subject, html); err != nil {
			failed++
			log.Printf("broadcast send err: broadcast=%d to=%s %v", b.ID, to, err)
			continue
		}
		sent++
	}

	b.SentCount = sent
	b.FailedCount = failed
	if err := s.repo.UpdateCounts(ctx, b.ID, sent, failed); err != nil {
		log.Printf("broadcast counts update err: broadcast=%d %v", b.ID, err)
	}

	s.audit.Record(ctx, adminEmail, "broadcast.send", "", map[string]any{
		"broadcastId": b.ID,
		"audience":    audience,
		"sent":        sent,
		"failed":      failed,
	})
	return b, nil
}

func (s *BroadcastService) List(ctx context.Context, page, size int) ([]model.Broadcast, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.List(ctx, (page-1)*size, size)
}

package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/pkg"
	"Aurora_Admin/internal/repository/mysql"
)

type auditStore interface {
	Append(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, cursor uint64, limit int) ([]model.AuditLog, uint64, error)
}

type AuditService struct {
	repo auditStore
}

func NewAuditService(repo *mysql.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record 审计写入是主操作的附带动作：失败只记日志，绝不影响调用方
func (s *AuditService) Record(ctx context.Context, adminEmail, action, targetUID string, details map[string]any) {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		AdminEmail: adminEmail,
		Action:     action,
		TargetUID:  targetUID,
		Details:    string(payload),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		log.Printf("audit append err: action=%s target=%s %v", action, targetUID, err)
	}
}

func (s *AuditService) List(ctx context.Context, cursor uint64, limit int) ([]model.AuditLog, uint64, error) {
	return s.repo.List(ctx, cursor, limit)
}

// Sender 审计事件投递函数，默认实现发 kafka
type Sender func(ctx context.Context, entry *model.AuditLog) error

type outboxStore interface {
	ListPending(ctx context.Context, batchSize int) ([]model.AuditLog, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64) error
}

// AuditRelayer 定时把待投递的审计事件发到 kafka，失败标记重试下轮再发
type AuditRelayer struct {
	repo      outboxStore
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewAuditRelayer(repo *mysql.AuditRepository, sender Sender) *AuditRelayer {
	return &AuditRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *AuditRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *AuditRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("audit outbox query err: %v", err)
		return
	}
	for i := range rows {
		entry := rows[i]
		if err := r.sender(ctx, &entry); err != nil {
			_ = r.repo.MarkFailed(ctx, entry.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, entry.ID)
	}
}

// KafkaSender 审计事件按目标用户分区发出去
func KafkaSender(w *pkg.AuditEventWriter) Sender {
	return func(ctx context.Context, entry *model.AuditLog) error {
		details := entry.Details
		if details == "" {
			details = "null"
		}
		value, err := json.Marshal(map[string]any{
			"adminEmail": entry.AdminEmail,
			"action":     entry.Action,
			"targetUid":  entry.TargetUID,
			"details":    json.RawMessage(details),
			"timestamp":  entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return err
		}
		key := entry.TargetUID
		if key == "" {
			key = pkg.AuditFallbackKey(entry.ID)
		}
		return w.Publish(ctx, key, value)
	}
}

// LogSender 没配 kafka 时的兜底 sender
func LogSender(ctx context.Context, entry *model.AuditLog) error {
	log.Printf("AUDIT SEND action=%s admin=%s target=%s", entry.Action, entry.AdminEmail, entry.TargetUID)
	return nil
}

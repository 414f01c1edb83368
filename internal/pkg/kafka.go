package pkg

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultAuditTopic 审计事件默认主题，下游风控/合规消费
const DefaultAuditTopic = "admin-audit-events"

// AuditEventWriter 审计事件生产者。
// 按 key（目标用户）散列分区，同一用户的操作在分区内保序。
type AuditEventWriter struct {
	writer *kafka.Writer
}

type AuditKafkaConfig struct {
	Brokers      []string
	Topic        string        // 为空时用 DefaultAuditTopic
	BatchTimeout time.Duration // 为空时 50ms，审计量不大，攒批意义有限
}

func NewAuditEventWriter(cfg AuditKafkaConfig) *AuditEventWriter {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultAuditTopic
	}
	batch := cfg.BatchTimeout
	if batch <= 0 {
		batch = 50 * time.Millisecond
	}
	return &AuditEventWriter{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll, // 审计事件不能丢
		BatchTimeout: batch,
	}}
}

func (w *AuditEventWriter) Close() error {
	if w == nil || w.writer == nil {
		return nil
	}
	return w.writer.Close()
}

// Publish 投递一条已编码的审计事件
func (w *AuditEventWriter) Publish(ctx context.Context, key string, event []byte) error {
	return w.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: event,
		Time:  time.Now(),
	})
}

// AuditFallbackKey 事件没有目标用户时按日志行 id 分区
func AuditFallbackKey(logID uint64) string {
	return "audit-" + strconv.FormatUint(logID, 10)
}

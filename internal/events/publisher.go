package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ErrPublisherClosed 发布器已关闭
var ErrPublisherClosed = errors.New("event publisher closed")

// Event 领域事件
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	UserID     uint        `json:"user_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// NewEvent 创建事件，自动填充 ID 与时间
func NewEvent(eventType string, userID uint, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// messageWriter kafka.Writer 的最小抽象
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 基于 kafka-go 的事件发布器
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	closed atomic.Bool
}

// NopPublisher 未启用 Kafka 时的空实现
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close 无操作
func (NopPublisher) Close() error { return nil }

// NewPublisher 根据配置创建发布器，未启用时返回 NopPublisher
func NewPublisher(cfg *config.KafkaConfig) Publisher {
	if cfg == nil || !cfg.Enabled {
		return NopPublisher{}
	}
	brokers := normalizeBrokers(cfg.Brokers)
	topic := strings.TrimSpace(cfg.Topic)
	if len(brokers) == 0 || topic == "" {
		logger.Warnw("kafka_publisher_disabled_invalid_config", "brokers", cfg.Brokers, "topic", cfg.Topic)
		return NopPublisher{}
	}

	batchTimeout := time.Duration(cfg.BatchTimeoutMS) * time.Millisecond
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		MaxAttempts:  maxAttempts,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.S().Errorf("kafka producer error: "+msg, args...)
		}),
	}
	return newKafkaPublisher(writer, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// Publish 同步写入一条事件，以用户 ID 作为消息键保证同一用户的事件有序
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.UserID), 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
		Time: event.OccurredAt,
	})
}

// Close 关闭发布器
func (p *KafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func normalizeBrokers(raw []string) []string {
	brokers := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				brokers = append(brokers, trimmed)
			}
		}
	}
	return brokers
}

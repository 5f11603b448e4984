package queue

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 未指定队列时使用
const DefaultQueue = constants.QueueDefault

// Client asynq 生产端，队列未启用时所有投递都是空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{}
	}
	return &Client{client: asynq.NewClient(redisConnOpt(cfg))}
}

// Enabled 是否会真正投递任务
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderPlaced 投递下单通知任务
// 同一订单重复投递时按任务 ID 去重，冲突视为成功
func (c *Client) EnqueueOrderPlaced(ctx context.Context, payload OrderPlacedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderPlacedTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.TaskID(OrderPlacedTaskID(payload.OrderID)),
	}, opts...)
	if _, err := c.client.EnqueueContext(ctx, task, options...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}
	return nil
}

// BuildServerConfig 生成 worker 端的连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return redisConnOpt(cfg), serverCfg
}

func redisConnOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}

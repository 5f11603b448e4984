package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const captchaKeyPrefix = "captcha:"

// CaptchaStore 基于 Redis 的图片验证码存储，实现 base64Captcha.Store
type CaptchaStore struct {
	store   *Store
	expire  time.Duration
	timeout time.Duration
}

// NewCaptchaStore 创建验证码存储
func NewCaptchaStore(store *Store, expire time.Duration) *CaptchaStore {
	if expire <= 0 {
		expire = 5 * time.Minute
	}
	return &CaptchaStore{store: store, expire: expire, timeout: 2 * time.Second}
}

// Set 保存验证码答案
func (c *CaptchaStore) Set(id string, value string) error {
	if !c.store.Enabled() {
		return errors.New("captcha store requires redis")
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.store.Client().Set(ctx, c.key(id), value, c.expire).Err()
}

// Get 读取验证码答案，clear 为 true 时读取后删除
func (c *CaptchaStore) Get(id string, clear bool) string {
	if !c.store.Enabled() {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	var (
		val string
		err error
	)
	if clear {
		val, err = c.store.Client().GetDel(ctx, c.key(id)).Result()
	} else {
		val, err = c.store.Client().Get(ctx, c.key(id)).Result()
	}
	if errors.Is(err, redis.Nil) || err != nil {
		return ""
	}
	return val
}

// Verify 校验验证码（忽略大小写）
func (c *CaptchaStore) Verify(id, answer string, clear bool) bool {
	stored := c.Get(id, clear)
	if stored == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(answer))
}

func (c *CaptchaStore) key(id string) string {
	return c.store.Key(captchaKeyPrefix + strings.TrimSpace(id))
}

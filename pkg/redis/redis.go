package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
)

// ErrTokenNotFound 密码重置令牌不存在或已过期
var ErrTokenNotFound = errors.New("令牌不存在或已过期")

// Client Redis 客户端封装
// 承载 Token 黑名单、请求限流与密码重置令牌三类场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 密码重置令牌 ──

const resetTokenPrefix = "pwdreset:"

// StoreResetToken 保存密码重置令牌 → 用户 ID 的映射
func (c *Client) StoreResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, resetTokenPrefix+token, userID, ttl).Err()
}

// ConsumeResetToken 取出并删除密码重置令牌，返回对应用户 ID
// 令牌一次性使用，取出即失效
func (c *Client) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := c.rdb.GetDel(ctx, resetTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return userID, nil
}

// ── 请求限流 ──

// CheckRateLimit 固定窗口计数限流
// 返回 true 表示放行，false 表示已超出 limit
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// 窗口首个请求，设置过期
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

// TokenBlacklist 后台令牌黑名单
// 设计说明：
// 1. JWT是无状态的，服务端无法主动让令牌失效，登出时把令牌写入黑名单
// 2. Key设计：blacklist:{token}，使用冒号分隔命名空间
// 3. 过期时间 = 令牌剩余有效期；令牌永不过期时黑名单记录也永久保留
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist 创建令牌黑名单
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// Revoke 将令牌加入黑名单，ttl为0表示永久
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "添加Token到黑名单失败")
	}
	return nil
}

// IsRevoked 检查令牌是否在黑名单中
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "检查黑名单失败")
	}
	return exists > 0, nil
}

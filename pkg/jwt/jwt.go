package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

const (
	issuer = "lemonade"

	// RoleAdmin 后台管理员角色
	RoleAdmin = "admin"
)

// Manager JWT管理器
// 设计说明：
// 1. 后台只有一个共享口令，Token只用来在HTTP请求之间记住"已通过口令门禁"
// 2. expire为0表示Token不过期(后台登录本来就没有会话过期)
// 3. 登出通过Redis黑名单让Token失效
type Manager struct {
	secret string        // JWT签名密钥
	expire time.Duration // Token有效期，0表示永不过期
}

// NewManager 创建JWT管理器
func NewManager(secret string, expire time.Duration) *Manager {
	return &Manager{
		secret: secret,
		expire: expire,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token 签发结果
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // 过期时间（秒），0表示不过期
}

// GenerateToken 为后台操作员签发Token
// 参数：
// - subject: 操作员标识（如登录IP、CLI主机名），仅用于日志排查
func (m *Manager) GenerateToken(subject string) (*Token, error) {
	now := time.Now()

	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
			ID:        uuid.NewString(), // 每次登录的Token都不同，登出只拉黑当前这一个
		},
	}
	if m.expire > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.expire))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Token失败")
	}

	return &Token{
		AccessToken: tokenString,
		ExpiresIn:   int64(m.expire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Token
// 学习要点：
// 1. 验证签名（防止伪造）
// 2. 验证过期时间（exp，如果有）
// 3. 验证角色必须是admin
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		// jwt/v5的错误是包装过的，必须用errors.Is判断
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != RoleAdmin {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// RemainingTTL Token剩余有效期
// Token不过期时返回0（加入黑名单时表示永久保存）
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	ttl := c.ExpiresAt.Time.Sub(now)
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

package admin

import (
	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

// DefaultPassword 默认后台口令(沿用最初版本的口令,部署时通过配置覆盖)
const DefaultPassword = "Kiko0811"

// ErrIncorrectPassword 口令错误
// 说明:登录页保持不变并显示错误提示,没有锁定、没有限流
var ErrIncorrectPassword = apperrors.ErrInvalidPassword

// Gate 后台口令门禁
// 设计说明:
// 1. 只有一个静态共享口令,与操作员输入做明文比较
// 2. 不做哈希、不做会话过期、不做限流
// 3. 这不是安全边界,只保留"口令错误→留在登录页;口令正确→进入订单列表"的行为约定
type Gate interface {
	// Authenticate 校验口令,错误时返回ErrIncorrectPassword
	Authenticate(password string) error
}

type staticGate struct {
	secret string
}

// NewGate 创建口令门禁,secret为空时使用DefaultPassword
func NewGate(secret string) Gate {
	if secret == "" {
		secret = DefaultPassword
	}
	return &staticGate{secret: secret}
}

// Authenticate 明文比较口令
func (g *staticGate) Authenticate(password string) error {
	if password != g.secret {
		return ErrIncorrectPassword
	}
	return nil
}

package admin

import (
	"context"
	"time"

	"github.com/kiwi/lemonade/internal/domain/admin"
	"github.com/kiwi/lemonade/pkg/jwt"
	"github.com/kiwi/lemonade/pkg/logger"
	"github.com/kiwi/lemonade/pkg/metrics"
)

// TokenRevoker 令牌黑名单写入接口(由Redis实现)
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 后台登录用例
// 设计说明：
// 1. 校验共享口令（口令门禁）
// 2. 签发后台Token，后续请求凭Token访问订单列表/删除
type LoginUseCase struct {
	gate       admin.Gate
	jwtManager *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(gate admin.Gate, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{
		gate:       gate,
		jwtManager: jwtManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Password string
	Subject  string // 操作员标识（HTTP为客户端IP），写入Token的sub
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // 过期时间（秒），0表示不过期
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. 校验口令（错误时停留在登录页，不锁定、不限流）
	if err := uc.gate.Authenticate(req.Password); err != nil {
		metrics.IncCounterVec(metrics.AdminLoginsTotal, map[string]string{"result": "failure"})
		log.WarnContext(ctx, "后台登录失败", "subject", req.Subject)
		return nil, err
	}

	// 2. 签发Token
	token, err := uc.jwtManager.GenerateToken(req.Subject)
	if err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.AdminLoginsTotal, map[string]string{"result": "success"})
	log.InfoContext(ctx, "后台登录成功", "subject", req.Subject)

	return &LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// LogoutUseCase 后台登出用例
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	revoker    TokenRevoker
	now        func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, revoker TokenRevoker) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, revoker: revoker, now: time.Now}
}

// Execute 执行登出
// 将Token加入黑名单，保留时长 = Token剩余有效期（Token不过期时永久保留）
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) error {
	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return err
	}

	if err := uc.revoker.Revoke(ctx, accessToken, claims.RemainingTTL(uc.now())); err != nil {
		return err
	}

	logger.FromContext(ctx).InfoContext(ctx, "后台已登出", "subject", claims.Subject)
	return nil
}

package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiwi/lemonade/internal/domain/admin"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/jwt"
	"github.com/kiwi/lemonade/pkg/metrics"
)

type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Duration)}
}

func (r *fakeRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[token] = ttl
	return nil
}

func TestLogin(t *testing.T) {
	uc := NewLoginUseCase(admin.NewGate("Kiko0811"), jwt.NewManager("test-secret", 0))
	failures := metrics.AdminLoginsTotal.WithLabelValues("failure")
	before := testutil.ToFloat64(failures)

	_, err := uc.Execute(context.Background(), LoginRequest{Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPassword))
	assert.Equal(t, "密码错误", apperrors.GetAppError(err).Message)
	assert.Equal(t, before+1, testutil.ToFloat64(failures))

	resp, err := uc.Execute(context.Background(), LoginRequest{Password: "Kiko0811", Subject: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(0), resp.ExpiresIn)
}

func TestLogout_NoExpiryRevokesForever(t *testing.T) {
	manager := jwt.NewManager("test-secret", 0)
	token, err := manager.GenerateToken("op")
	require.NoError(t, err)

	revoker := newFakeRevoker()
	require.NoError(t, NewLogoutUseCase(manager, revoker).Execute(context.Background(), token.AccessToken))

	ttl, ok := revoker.revoked[token.AccessToken]
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), ttl)
}

func TestLogout_RemainingTTL(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateToken("op")
	require.NoError(t, err)

	revoker := newFakeRevoker()
	uc := NewLogoutUseCase(manager, revoker)
	uc.now = func() time.Time { return time.Now().Add(30 * time.Minute) }
	require.NoError(t, uc.Execute(context.Background(), token.AccessToken))

	ttl := revoker.revoked[token.AccessToken]
	assert.InDelta(t, (30 * time.Minute).Seconds(), ttl.Seconds(), 5)
}

func TestLogout_InvalidToken(t *testing.T) {
	revoker := newFakeRevoker()
	err := NewLogoutUseCase(jwt.NewManager("test-secret", 0), revoker).Execute(context.Background(), "garbage")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	assert.Empty(t, revoker.revoked)
}

func TestLogout_RevokeFailure(t *testing.T) {
	manager := jwt.NewManager("test-secret", 0)
	token, err := manager.GenerateToken("op")
	require.NoError(t, err)

	revoker := newFakeRevoker()
	revoker.err = apperrors.ErrRedisError
	err = NewLogoutUseCase(manager, revoker).Execute(context.Background(), token.AccessToken)
	assert.True(t, errors.Is(err, apperrors.ErrRedisError))
}

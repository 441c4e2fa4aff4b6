package router

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appadmin "github.com/kiwi/lemonade/internal/application/admin"
	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/domain/admin"
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/redis"
	"github.com/kiwi/lemonade/internal/interface/http/handler"
	"github.com/kiwi/lemonade/internal/interface/http/middleware"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/jwt"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	mr     *miniredis.Miniredis
}

// newTestServer 组装完整的路由（Redis键值存储 + Redis黑名单，均由miniredis提供）
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, nil)
}

func newTestServerWithLogger(t *testing.T, log *slog.Logger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Server.Mode = "test"

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := redis.NewOrderStore(client, cfg.Order.KVKey)
	blacklist := redis.NewTokenBlacklist(client)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AdminTokenExpire)

	orderHandler := handler.NewOrderHandler(
		apporder.NewCreateOrderUseCase(repo, nil, nil),
		apporder.NewListOrdersUseCase(repo, cfg.Order.UnitPriceCents, time.Local),
		apporder.NewDeleteOrderUseCase(repo, nil),
	)
	adminHandler := handler.NewAdminHandler(
		appadmin.NewLoginUseCase(admin.NewGate(cfg.Admin.Password), jwtManager),
		appadmin.NewLogoutUseCase(jwtManager, blacklist),
	)

	engine := NewRouter(cfg, log, orderHandler, adminHandler, middleware.NewAuthMiddleware(jwtManager, blacklist))
	return &testServer{engine: engine, mr: mr}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	_, resp := s.do(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{"password": "Kiko0811"})
	require.Equal(t, 0, resp.Code)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

type listData struct {
	Orders []struct {
		ID           string `json:"id"`
		CustomerName string `json:"customer_name"`
		CreatedAt    string `json:"created_at"`
	} `json:"orders"`
	Stats struct {
		Total   int    `json:"total"`
		Today   int    `json:"today"`
		Revenue string `json:"revenue"`
	} `json:"stats"`
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w, resp := s.do(t, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestCreateOrder(t *testing.T) {
	s := newTestServer(t)

	_, resp := s.do(t, http.MethodPost, "/api/v1/orders", "", map[string]string{"customer_name": "  Alice "})
	require.Equal(t, 0, resp.Code, resp.Message)

	var data struct {
		ID           string `json:"id"`
		CustomerName string `json:"customer_name"`
		CreatedAt    string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.ID, 6)
	assert.Equal(t, "Alice", data.CustomerName)
	assert.NotEmpty(t, data.CreatedAt)
}

func TestCreateOrder_BlankName(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/orders", "", map[string]string{"customer_name": "   "})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	assert.Equal(t, "请输入您的姓名", resp.Message)
	assert.False(t, s.mr.Exists("lemonadeOrders"), "姓名为空时不应写入存储")
}

func TestCreateOrder_BadJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
}

func TestAdmin_RequiresLogin(t *testing.T) {
	s := newTestServer(t)

	_, resp := s.do(t, http.MethodGet, "/api/v1/admin/orders", "", nil)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, resp.Code)

	_, resp = s.do(t, http.MethodGet, "/api/v1/admin/orders", "not-a-jwt", nil)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, resp.Code)

	_, resp = s.do(t, http.MethodDelete, "/api/v1/admin/orders/ABC123", "", nil)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, resp.Code)
}

func TestAdmin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	_, resp := s.do(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{"password": "kiko0811"})
	assert.Equal(t, apperrors.ErrCodeInvalidPassword, resp.Code)
	assert.Equal(t, "密码错误", resp.Message)
}

func TestAdmin_ListDeleteFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	var ids []string
	for _, name := range []string{"Alice", "Bob"} {
		_, resp := s.do(t, http.MethodPost, "/api/v1/orders", "", map[string]string{"customer_name": name})
		require.Equal(t, 0, resp.Code)
		var data struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		ids = append(ids, data.ID)
	}

	// 列表：两单，今日两单，营业额5.00
	_, resp := s.do(t, http.MethodGet, "/api/v1/admin/orders", token, nil)
	require.Equal(t, 0, resp.Code, resp.Message)
	var list listData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list.Orders, 2)
	assert.Equal(t, 2, list.Stats.Total)
	assert.Equal(t, 2, list.Stats.Today)
	assert.Equal(t, "5.00", list.Stats.Revenue)

	// 删除第一单
	_, resp = s.do(t, http.MethodDelete, "/api/v1/admin/orders/"+ids[0], token, nil)
	require.Equal(t, 0, resp.Code, resp.Message)
	var deleted struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &deleted))
	assert.Equal(t, ids[0], deleted.ID)

	_, resp = s.do(t, http.MethodGet, "/api/v1/admin/orders", token, nil)
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, ids[1], list.Orders[0].ID)
	assert.Equal(t, "2.50", list.Stats.Revenue)

	// 重复删除
	_, resp = s.do(t, http.MethodDelete, "/api/v1/admin/orders/"+ids[0], token, nil)
	assert.Equal(t, apperrors.ErrCodeOrderNotFound, resp.Code)
}

func TestAdmin_DeleteLogsOperator(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServerWithLogger(t, slog.New(slog.NewJSONHandler(&buf, nil)))
	token := s.login(t)

	_, resp := s.do(t, http.MethodPost, "/api/v1/orders", "", map[string]string{"customer_name": "Eve"})
	require.Equal(t, 0, resp.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	_, resp = s.do(t, http.MethodDelete, "/api/v1/admin/orders/"+created.ID, token, nil)
	require.Equal(t, 0, resp.Code, resp.Message)

	// 删除日志带上登录时写入Token的操作员标识（客户端IP）
	var operator string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["msg"] == "订单已删除" {
			assert.Equal(t, created.ID, entry["order_id"])
			operator, _ = entry["operator"].(string)
		}
	}
	assert.Equal(t, "192.0.2.1", operator)
}

func TestAdmin_Logout(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	_, resp := s.do(t, http.MethodPost, "/api/v1/admin/logout", token, nil)
	require.Equal(t, 0, resp.Code, resp.Message)

	_, resp = s.do(t, http.MethodGet, "/api/v1/admin/orders", token, nil)
	assert.Equal(t, apperrors.ErrCodeTokenExpired, resp.Code)
	assert.Equal(t, "Token已失效，请重新登录", resp.Message)
}

func TestAdmin_StoreDown(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	s.mr.Close()

	// 黑名单查询失败时拒绝访问
	_, resp := s.do(t, http.MethodGet, "/api/v1/admin/orders", token, nil)
	assert.Equal(t, apperrors.ErrCodeRedisError, resp.Code)
}

func TestCreateOrder_StoreDown(t *testing.T) {
	s := newTestServer(t)
	s.mr.Close()

	_, resp := s.do(t, http.MethodPost, "/api/v1/orders", "", map[string]string{"customer_name": "Alice"})
	assert.Equal(t, apperrors.ErrCodeDatabaseError, resp.Code)
	assert.Equal(t, "下单失败,请稍后重试", resp.Message)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/ping", "", nil)

	w, _ := s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestSwaggerDoc(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/admin/orders")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

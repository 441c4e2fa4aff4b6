package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiwi/lemonade/internal/domain/order"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

// memoryRepo 内存订单仓储,满足order.Repository约定
type memoryRepo struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	now     func() time.Time
	calls   int
	failErr error
}

func newMemoryRepo(now func() time.Time) *memoryRepo {
	return &memoryRepo{orders: make(map[string]*order.Order), now: now}
}

func (r *memoryRepo) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.orders[o.ID]; ok {
		return order.ErrOrderIDConflict
	}
	o.CreatedAt = r.now()
	stored := *o
	r.orders[o.ID] = &stored
	return nil
}

func (r *memoryRepo) List(context.Context) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failErr != nil {
		return nil, r.failErr
	}
	list := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		copied := *o
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}

// clock 步进时钟
type clock struct{ t time.Time }

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

// sequenceIDs 依次返回给定随机下标,便于构造确定的订单号
func sequenceIDs(now func() time.Time, idx ...int) *order.IDGenerator {
	i := 0
	return order.NewIDGenerator(now, func(n int) int {
		v := idx[i%len(idx)] % n
		i++
		return v
	})
}

func TestCreateOrder_Success(t *testing.T) {
	c := &clock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	repo := newMemoryRepo(c.Now)
	pub := &recordingPublisher{}
	uc := NewCreateOrderUseCase(repo, nil, pub)

	resp, err := uc.Execute(context.Background(), CreateOrderRequest{CustomerName: "  Alice  "})
	require.NoError(t, err)

	assert.Len(t, resp.ID, order.IDLength)
	assert.Equal(t, "Alice", resp.CustomerName)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.Equal(t, []string{RoutingKeyOrderCreated}, pub.keys)

	// 下单后列表中包含该订单
	list, err := NewListOrdersUseCase(repo, order.DefaultUnitPriceCents, time.UTC).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, resp.ID, list.Orders[0].ID)
	assert.Equal(t, "Alice", list.Orders[0].CustomerName)
}

func TestCreateOrder_BlankNameNoStoreCall(t *testing.T) {
	repo := newMemoryRepo(time.Now)
	pub := &recordingPublisher{}
	uc := NewCreateOrderUseCase(repo, nil, pub)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := uc.Execute(context.Background(), CreateOrderRequest{CustomerName: name})
		assert.True(t, errors.Is(err, order.ErrBlankCustomerName), "name=%q", name)
	}

	assert.Equal(t, 0, repo.calls, "姓名为空时不应访问存储")
	assert.Empty(t, repo.orders)
	assert.Empty(t, pub.keys)
}

func TestCreateOrder_StoreFailure(t *testing.T) {
	repo := newMemoryRepo(time.Now)
	repo.failErr = apperrors.WrapCode(errors.New("connection refused"), apperrors.ErrCodeDatabaseError, "创建订单失败")
	pub := &recordingPublisher{}
	uc := NewCreateOrderUseCase(repo, nil, pub)

	_, err := uc.Execute(context.Background(), CreateOrderRequest{CustomerName: "Bob"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrCreateOrderFailed))
	assert.Equal(t, "下单失败,请稍后重试", apperrors.GetAppError(err).Message)

	// 只尝试一次,不重试
	assert.Equal(t, 1, repo.calls)
	assert.Empty(t, pub.keys)
}

func TestCreateOrder_IDConflictNotRetried(t *testing.T) {
	c := &clock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	repo := newMemoryRepo(c.Now)
	// 固定时钟+固定随机源,两次生成相同订单号
	fixed := time.UnixMilli(1717232400123)
	gen := sequenceIDs(func() time.Time { return fixed }, 0, 1, 2, 3, 4, 5)
	uc := NewCreateOrderUseCase(repo, gen, nil)

	first, err := uc.Execute(context.Background(), CreateOrderRequest{CustomerName: "first"})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", first.ID)

	_, err = uc.Execute(context.Background(), CreateOrderRequest{CustomerName: "second"})
	assert.True(t, errors.Is(err, order.ErrOrderIDConflict))
	assert.Equal(t, 2, repo.calls)

	list, err := NewListOrdersUseCase(repo, order.DefaultUnitPriceCents, time.UTC).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "first", list.Orders[0].CustomerName)
}

func TestCreateOrder_PublishFailureIgnored(t *testing.T) {
	repo := newMemoryRepo(time.Now)
	pub := &recordingPublisher{err: errors.New("broker down")}
	uc := NewCreateOrderUseCase(repo, nil, pub)

	resp, err := uc.Execute(context.Background(), CreateOrderRequest{CustomerName: "Carol"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, repo.orders, 1)
}

func TestListOrders_SortedAndStats(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 从前一天23:57(本地)开始,每单+1分钟:23:58, 23:59, 00:00, 00:01
	c := &clock{t: time.Date(2024, 6, 1, 23, 57, 0, 0, loc)}
	repo := newMemoryRepo(c.Now)
	// 随机下标递增,保证4个订单号互不相同
	create := NewCreateOrderUseCase(repo, sequenceIDs(time.Now, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
		12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23), nil)

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := create.Execute(context.Background(), CreateOrderRequest{CustomerName: name})
		require.NoError(t, err)
	}

	uc := NewListOrdersUseCase(repo, 250, loc)
	uc.now = func() time.Time { return time.Date(2024, 6, 2, 12, 0, 0, 0, loc) }

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Orders, 4)
	assert.Equal(t, []string{"d", "c", "b", "a"}, []string{
		resp.Orders[0].CustomerName, resp.Orders[1].CustomerName,
		resp.Orders[2].CustomerName, resp.Orders[3].CustomerName,
	})
	for i := 1; i < len(resp.Orders); i++ {
		assert.False(t, resp.Orders[i].CreatedAt.After(resp.Orders[i-1].CreatedAt))
	}

	assert.Equal(t, 4, resp.Stats.Total)
	assert.Equal(t, 2, resp.Stats.Today)
	assert.Equal(t, int64(1000), resp.Stats.RevenueCents)
	assert.Equal(t, "10.00", resp.Stats.Revenue)
}

func TestListOrders_Empty(t *testing.T) {
	uc := NewListOrdersUseCase(newMemoryRepo(time.Now), 250, nil)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Orders)
	assert.Equal(t, 0, resp.Stats.Total)
	assert.Equal(t, "0.00", resp.Stats.Revenue)
}

func TestListOrders_StoreFailure(t *testing.T) {
	repo := newMemoryRepo(time.Now)
	repo.failErr = errors.New("timeout")

	_, err := NewListOrdersUseCase(repo, 250, nil).Execute(context.Background())
	assert.True(t, errors.Is(err, order.ErrLoadOrdersFailed))
}

func TestDeleteOrder(t *testing.T) {
	repo := newMemoryRepo(time.Now)
	pub := &recordingPublisher{}
	create := NewCreateOrderUseCase(repo, nil, nil)
	del := NewDeleteOrderUseCase(repo, pub)
	list := NewListOrdersUseCase(repo, 250, nil)

	created, err := create.Execute(context.Background(), CreateOrderRequest{CustomerName: "Dave"})
	require.NoError(t, err)

	resp, err := del.Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, []string{RoutingKeyOrderDeleted}, pub.keys)

	// 删除后列表中不再包含该订单
	listed, err := list.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed.Orders)

	// 删除不存在的订单
	_, err = del.Execute(context.Background(), created.ID)
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
	assert.Len(t, pub.keys, 1)
}

func TestDeleteOrder_StoreFailure(t *testing.T) {
	repo := newMemoryRepo(time.Now)
	repo.failErr = errors.New("disk full")

	_, err := NewDeleteOrderUseCase(repo, nil).Execute(context.Background(), "ABC123")
	assert.True(t, errors.Is(err, order.ErrDeleteOrderFailed))
}

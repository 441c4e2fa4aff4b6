package order

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateOrderID_Format 随机生成大量订单号,验证格式
func TestGenerateOrderID_Format(t *testing.T) {
	for i := 0; i < 2000; i++ {
		id := GenerateOrderID()
		require.Len(t, id, IDLength, "订单号长度必须为6: %q", id)

		for _, c := range id[:3] {
			assert.True(t, strings.ContainsRune(IDAlphabet, c), "前3位必须来自字符表: %q", id)
		}
		for _, c := range id[3:] {
			assert.True(t, c >= '0' && c <= '9', "后3位必须是数字: %q", id)
		}
	}
}

// TestIDGenerator_Deterministic 固定时钟和随机源,验证拼接规则
func TestIDGenerator_Deterministic(t *testing.T) {
	// 随机源依次返回 0,1,2,3,4,5 → 候选 "ABCDEF",只保留前3位
	draws := 0
	intn := func(n int) int {
		assert.Equal(t, len(IDAlphabet), n)
		v := draws
		draws++
		return v
	}
	now := func() time.Time { return time.UnixMilli(1699248000123) }

	g := NewIDGenerator(now, intn)
	assert.Equal(t, "ABC123", g.Generate())
	assert.Equal(t, 6, draws, "每次生成应抽取6个随机字符")
}

func TestIDGenerator_DigitsFromAlphabetTail(t *testing.T) {
	// 下标26-35是数字,前缀也可能全是数字
	intn := func(int) int { return 35 }
	now := func() time.Time { return time.UnixMilli(1700000000999) }

	assert.Equal(t, "999999", NewIDGenerator(now, intn).Generate())
}

func TestIDGenerator_SameWindowSameDrawCollides(t *testing.T) {
	// 两次调用落在同一毫秒窗口且随机前缀相同时会冲突(已知行为)
	fixed := func(int) int { return 10 }
	now := func() time.Time { return time.UnixMilli(1700000000456) }
	g := NewIDGenerator(now, fixed)

	assert.Equal(t, g.Generate(), g.Generate())
}

func TestTimestampSuffix(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"普通时间戳", 1699248000123, "123"},
		{"尾部为0", 1699248000000, "000"},
		{"尾部带前导0", 1699248000007, "007"},
		{"纪元后不足100毫秒", 42, "042"},
		{"纪元", 0, "000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timestampSuffix(time.UnixMilli(tt.ms)))
		})
	}
}

func TestIDGenerator_UniformAlphabetCoverage(t *testing.T) {
	// 固定种子的随机源,足够多次抽样后每个字符都应出现过
	r := rand.New(rand.NewSource(1))
	g := NewIDGenerator(nil, r.Intn)

	seen := make(map[rune]bool)
	for i := 0; i < 5000; i++ {
		for _, c := range g.Generate()[:3] {
			seen[c] = true
		}
	}
	assert.Len(t, seen, len(IDAlphabet))
}

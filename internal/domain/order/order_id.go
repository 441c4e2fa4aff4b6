package order

import (
	"math/rand"
	"strconv"
	"time"
)

const (
	// IDAlphabet 订单号随机部分的字符表(A-Z后接0-9,共36个字符)
	IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// IDLength 订单号长度
	IDLength = 6

	randomDraws  = 6 // 每次抽取的随机字符数
	randomPrefix = 3 // 实际保留的随机字符数
)

// IDGenerator 订单号生成器
// 教学要点:订单号设计取舍
// 1. 足够短,顾客能念出来、记得住(6位)
// 2. 短时间窗口内冲突概率低(随机前缀 + 毫秒时间戳后3位)
// 3. 不是加密安全的,也不保证全局唯一:同一"毫秒mod 1000"窗口内
//    随机前缀相同就会冲突,冲突交给存储层主键约束处理
//
// 格式:XXXNNN,例如 K7Q042
//   - 前3位:从IDAlphabet中有放回均匀抽取
//   - 后3位:当前Unix毫秒时间戳十进制表示的最后3位
type IDGenerator struct {
	now  func() time.Time // 时钟(测试时可替换)
	intn func(n int) int  // 随机源,返回[0,n)
}

// NewIDGenerator 创建订单号生成器
// now或intn为nil时使用系统时钟和math/rand
func NewIDGenerator(now func() time.Time, intn func(n int) int) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &IDGenerator{now: now, intn: intn}
}

// Generate 生成一个订单号
// 算法:
// 1. 从字符表中有放回抽取6个字符作为候选
// 2. 取当前毫秒时间戳的十进制字符串最后3位
// 3. 候选的前3个字符 + 时间戳3位数字
func (g *IDGenerator) Generate() string {
	candidate := make([]byte, randomDraws)
	for i := range candidate {
		candidate[i] = IDAlphabet[g.intn(len(IDAlphabet))]
	}

	return string(candidate[:randomPrefix]) + timestampSuffix(g.now())
}

// timestampSuffix 毫秒时间戳的最后3位
// 纪元后不足100毫秒的时间补零,保证订单号总是6位
func timestampSuffix(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) >= 3 {
		return ms[len(ms)-3:]
	}
	return "000"[:3-len(ms)] + ms
}

var defaultGenerator = NewIDGenerator(nil, nil)

// GenerateOrderID 使用默认生成器生成订单号
func GenerateOrderID() string {
	return defaultGenerator.Generate()
}

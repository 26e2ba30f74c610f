package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== ActionRateLimiter 操作限流器 ====================

// ActionRateLimiter 操作级限流器
// 按 key 记录上次执行时间，冷却期内拒绝；用于登录尝试与批量导入
type ActionRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &ActionRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *ActionRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时即刻记账
// key: 限流键，如 "import:42"
// interval: 冷却间隔
func (r *ActionRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{
		Allowed:    true,
		RetryAfter: 0,
	}
}

// Reset 重置指定 key 的限流
func (r *ActionRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Key 生成工具 ====================

// ImportKey 卖家批量导入限流键
func ImportKey(sellerID int64) string {
	return fmt.Sprintf("import:%d", sellerID)
}

// DescribeKey AI 文案生成限流键
func DescribeKey(sellerID int64) string {
	return fmt.Sprintf("describe:%d", sellerID)
}

// ==================== 默认限流间隔 ====================

const (
	// ImportInterval 两次批量导入之间的最短间隔
	ImportInterval = 30 * time.Second
	// DescribeInterval 两次 AI 生成之间的最短间隔
	DescribeInterval = 5 * time.Second
)

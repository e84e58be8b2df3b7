// Package cooldown 控制每次上游调用之后的等待策略
package cooldown

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/klog/v2"
)

// Policy 每次调用上游服务后执行一次 Wait
type Policy interface {
	Wait(ctx context.Context) error
}

// Fixed 固定间隔等待
type Fixed struct {
	Interval time.Duration
}

func NewFixed(interval time.Duration) *Fixed {
	return &Fixed{Interval: interval}
}

func (f *Fixed) Wait(ctx context.Context) error {
	if f.Interval <= 0 {
		return nil
	}
	timer := time.NewTimer(f.Interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// None 不等待，测试中使用
type None struct{}

func (None) Wait(ctx context.Context) error {
	return nil
}

// Limited 令牌桶限速，rps 为每秒允许的调用次数
type Limited struct {
	limiter *rate.Limiter
}

func NewLimited(rps float64, burst int) *Limited {
	if burst < 1 {
		burst = 1
	}
	return &Limited{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *Limited) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// New 根据配置选择策略：rps > 0 使用令牌桶，否则固定间隔
func New(interval time.Duration, rps float64, burst int) Policy {
	if rps > 0 {
		klog.V(6).Infof("[Cooldown] 使用令牌桶限速: rps=%.2f, burst=%d", rps, burst)
		return NewLimited(rps, burst)
	}
	if interval <= 0 {
		klog.V(6).Infof("[Cooldown] 冷却时间为 0，不等待")
		return None{}
	}
	klog.V(6).Infof("[Cooldown] 使用固定冷却: %s", interval)
	return NewFixed(interval)
}

// Counting 记录 Wait 调用次数，包装另一个策略
type Counting struct {
	Inner Policy
	calls atomic.Int64
}

func (c *Counting) Wait(ctx context.Context) error {
	c.calls.Add(1)
	if c.Inner == nil {
		return nil
	}
	return c.Inner.Wait(ctx)
}

func (c *Counting) Calls() int {
	return int(c.calls.Load())
}

// Package limiter token bucket rate limiting keyed by request.
// Package limiter 令牌桶限流
package limiter

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 限流规则
type BucketRule struct {
	// Key 路由路径
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

type limiter struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
}

// MethodLimiter limits by route path only; all clients share the bucket.
// MethodLimiter 按路由路径限流
type MethodLimiter struct {
	*limiter
}

func NewMethodLimiter() Face {
	return MethodLimiter{limiter: &limiter{buckets: make(map[string]*ratelimit.Bucket)}}
}

func (l MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index != -1 {
		return uri[:index]
	}
	return uri
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.add(rules, func(r BucketRule) string { return r.Key })
	return l
}

// ClientLimiter limits per client IP and route; each pair gets its own bucket,
// created lazily from the route rule.
// ClientLimiter 按客户端 IP + 路由限流
type ClientLimiter struct {
	*limiter
	rules map[string]BucketRule
}

func NewClientLimiter() Face {
	return ClientLimiter{
		limiter: &limiter{buckets: make(map[string]*ratelimit.Bucket)},
		rules:   make(map[string]BucketRule),
	}
}

func (l ClientLimiter) Key(c *gin.Context) string {
	return c.ClientIP() + "|" + c.FullPath()
}

func (l ClientLimiter) AddBuckets(rules ...BucketRule) Face {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range rules {
		l.rules[r.Key] = r
	}
	return l
}

func (l ClientLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	if b, ok := l.limiter.GetBucket(key); ok {
		return b, true
	}

	route := key
	if i := strings.Index(key, "|"); i != -1 {
		route = key[i+1:]
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		return b, true
	}
	rule, ok := l.rules[route]
	if !ok {
		return nil, false
	}
	b := newBucket(rule)
	l.buckets[key] = b
	return b, true
}

func (l *limiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket, ok := l.buckets[key]
	return bucket, ok
}

func (l *limiter) add(rules []BucketRule, key func(BucketRule) string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rule := range rules {
		if _, ok := l.buckets[key(rule)]; !ok {
			l.buckets[key(rule)] = newBucket(rule)
		}
	}
}

func newBucket(rule BucketRule) *ratelimit.Bucket {
	quantum := rule.Quantum
	if quantum <= 0 {
		quantum = 1
	}
	return ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, quantum)
}

// Package ratelimit はキーごとの固定ウィンドウ方式レート制限を提供します。
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter は key に対する操作が現在のウィンドウ内で許可されるかを判定します。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter は複数インスタンス間でカウントを共有するRedis実装です。
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

var (
	_ Limiter = (*RedisLimiter)(nil)
	_ Limiter = (*MemoryLimiter)(nil)
)

// incrScript はカウンタを増やし、有効期限が無ければ設定します。
// INCRとPEXPIREを1コマンドで実行するため、期限の無いキーが残りません。
var incrScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// NewRedisLimiter はRedisLimiterの新しいインスタンスを生成します。
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

func (l *RedisLimiter) key(k string) string {
	return fmt.Sprintf("%s:%s", l.prefix, k)
}

// Allow はカウンタを1増やし、上限以内であれば true を返します。
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := incrScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	return n <= int64(l.limit), nil
}

// MemoryLimiter はプロセス内でカウントするLimiterです。Redisがない場合に使います。
type MemoryLimiter struct {
	limit    int
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count     int
	lastReset time.Time
}

// NewMemoryLimiter はMemoryLimiterの新しいインスタンスを生成します。
func NewMemoryLimiter(limit int, interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow は key のカウンタを1増やし、上限以内であれば true を返します。
// interval を過ぎたウィンドウはリセットされます。
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.lastReset) >= l.interval {
		w = &window{lastReset: now}
		l.windows[key] = w
		l.sweep(now)
	}
	w.count++
	return w.count <= l.limit, nil
}

// sweep は期限切れのウィンドウを削除します。mu を保持した状態で呼び出すこと。
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.lastReset) >= l.interval {
			delete(l.windows, k)
		}
	}
}

package v1

import (
	"sync"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"golang.org/x/time/rate"
)

const deviceLimiterIdleTTL = 10 * time.Minute

type deviceLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// DeviceRateLimiter ограничивает частоту показаний для каждого MAC-адреса отдельно
type DeviceRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*deviceLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewDeviceRateLimiter создает лимитер. Неположительный perSecond отключает ограничение.
func NewDeviceRateLimiter(perSecond float64, burst int) *DeviceRateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &DeviceRateLimiter{
		limiters: make(map[string]*deviceLimiter),
		limit:    limit,
		burst:    burst,
		now:      time.Now,
	}
}

// Allow сообщает, можно ли принять очередное показание устройства
func (l *DeviceRateLimiter) Allow(mac string) bool {
	if l == nil || l.limit == rate.Inf {
		return true
	}
	key := models.NormalizeMAC(mac)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictIdle(now)
	entry, ok := l.limiters[key]
	if !ok {
		entry = &deviceLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *DeviceRateLimiter) evictIdle(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > deviceLimiterIdleTTL {
			delete(l.limiters, key)
		}
	}
}

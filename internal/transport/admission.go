package transport

import (
	"sync"
	"time"
)

// Decision - результат проверки входящего соединения
type Decision int

const (
	// Admitted - соединение принято, слот занят до Release
	Admitted Decision = iota
	// RejectedTotal - достигнут общий лимит соединений
	RejectedTotal
	// RejectedPerIP - достигнут лимит соединений с одного адреса
	RejectedPerIP
	// RejectedRate - превышено число попыток в окне
	RejectedRate
)

// String возвращает причину отказа для логов и метрик
func (d Decision) String() string {
	switch d {
	case Admitted:
		return "admitted"
	case RejectedTotal:
		return "max_connections"
	case RejectedPerIP:
		return "max_connections_per_ip"
	case RejectedRate:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// AdmissionConfig - лимиты admission control
type AdmissionConfig struct {
	MaxConnections      int
	MaxConnectionsPerIP int
	RateLimitMax        int
	RateLimitWindow     time.Duration
}

// Admission считает открытые соединения и попытки подключения по адресам.
// Проверки выполняются до аутентификации.
type Admission struct {
	perIP   map[string]int
	limiter *RateLimiter
	cfg     AdmissionConfig
	total   int
	mu      sync.Mutex
}

// NewAdmission создает admission control и запускает очистку окон rate limit
func NewAdmission(cfg AdmissionConfig) *Admission {
	return &Admission{
		perIP:   make(map[string]int),
		limiter: NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		cfg:     cfg,
	}
}

// Admit проверяет лимиты в порядке: общий, по адресу, частота попыток.
// Каждый вызов засчитывается в окно rate limit, даже отвергнутый другим лимитом.
// При Admitted вызывающий обязан вызвать Release(ip).
func (a *Admission) Admit(ip string) Decision {
	a.mu.Lock()
	defer a.mu.Unlock()

	allowed := a.limiter.Allow(ip)

	if a.cfg.MaxConnections > 0 && a.total >= a.cfg.MaxConnections {
		return RejectedTotal
	}
	if a.cfg.MaxConnectionsPerIP > 0 && a.perIP[ip] >= a.cfg.MaxConnectionsPerIP {
		return RejectedPerIP
	}
	if !allowed {
		return RejectedRate
	}

	a.total++
	a.perIP[ip]++
	return Admitted
}

// Release освобождает слот соединения
func (a *Admission) Release(ip string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.total > 0 {
		a.total--
	}
	if n := a.perIP[ip]; n <= 1 {
		delete(a.perIP, ip)
	} else {
		a.perIP[ip] = n - 1
	}
}

// Open возвращает число открытых соединений
func (a *Admission) Open() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Reset сбрасывает счетчики соединений и окна rate limit
func (a *Admission) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total = 0
	clear(a.perIP)
	a.limiter.Reset()
}

// Stop останавливает фоновую очистку
func (a *Admission) Stop() {
	a.limiter.Stop()
}

// RateLimiter ограничивает число попыток на ключ фиксированным окном
type RateLimiter struct {
	buckets  map[string]*bucket
	now      func() time.Time
	cleanupC chan struct{}
	stopOnce sync.Once
	rate     int
	window   time.Duration
	mu       sync.Mutex
}

// bucket - окно для конкретного адреса
type bucket struct {
	windowStart time.Time
	attempts    int
}

// NewRateLimiter создает rate limiter.
// rate - максимальное количество попыток за window, 0 отключает лимит.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		now:      time.Now,
		cleanupC: make(chan struct{}),
		rate:     rate,
		window:   window,
	}

	if rate > 0 && window > 0 {
		// Запускаем периодическую очистку старых окон
		go rl.cleanup()
	}

	return rl
}

// cleanup периодически удаляет неактивные окна для экономии памяти
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет окна, которые истекли больше window назад
func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window*2 {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает cleanup goroutine. Повторный вызов безопасен.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Reset забывает все окна
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	clear(rl.buckets)
}

// Allow засчитывает попытку для key и сообщает, укладывается ли она в лимит
func (rl *RateLimiter) Allow(key string) bool {
	if rl.rate <= 0 || rl.window <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists || now.Sub(b.windowStart) >= rl.window {
		// Новое окно
		b = &bucket{windowStart: now}
		rl.buckets[key] = b
	}

	if b.attempts >= rl.rate {
		return false
	}
	b.attempts++
	return true
}

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const (
	msgTooManyRequests = `{"code":429,"message":"Demasiados intentos, esperá un momento."}`

	limiterIdleTTL = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time

	// trustForwarded брать адрес из X-Forwarded-For (только за своим прокси)
	trustForwarded bool
}

// NewRateLimiter создает ограничитель: rps запросов в секунду, burst всплеск
// trustForwarded включается, только если сервис стоит за прокси, дописывающим X-Forwarded-For
func NewRateLimiter(rps float64, burst int, trustForwarded bool) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,

		trustForwarded: trustForwarded,
	}
}

// Allow проверяет, можно ли пропустить запрос клиента
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	client, ok := l.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

// Cleanup удаляет ограничители клиентов, не появлявшихся дольше limiterIdleTTL
func (l *RateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > limiterIdleTTL {
			delete(l.clients, key)
		}
	}
}

// RunCleanup периодически чистит ограничители до закрытия stopCh
func (l *RateLimiter) RunCleanup(stopCh <-chan struct{}) {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// Middleware отвечает 429, если клиент превысил лимит
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(l.clientIP(r)) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(msgTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP адрес соединения или, за доверенным прокси, последний адрес из X-Forwarded-For
// Последний адрес дописан нашим прокси, остальные клиент может подставить сам.
func (l *RateLimiter) clientIP(r *http.Request) string {
	if l.trustForwarded {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

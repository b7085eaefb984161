package httpapi

import (
	"log"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"
)

type RateLimitConfig struct {
	IPPerMinute int
	IPBurst     int
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the header is ignored.
	TrustedProxies []string
}

// RateLimiter throttles the public form posts (sign-in, password reset) per
// client IP.
type RateLimiter struct {
	ipLimiter *tokenLimiter
	proxies   []netip.Prefix
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		ipLimiter: newTokenLimiter(cfg.IPPerMinute, cfg.IPBurst),
		proxies:   parseProxies(cfg.TrustedProxies),
	}
}

func parseProxies(entries []string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				log.Printf("ignoring trusted proxy entry=%q err=%v", entry, err)
				continue
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			log.Printf("ignoring trusted proxy entry=%q err=%v", entry, err)
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if ip != "" && !l.ipLimiter.allow(ip) {
			w.Header().Set("Retry-After", "60")
			if strings.Contains(r.Header.Get("Accept"), "application/json") {
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			renderError(w, r, http.StatusTooManyRequests, "Too many attempts. Wait a minute and try again.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type tokenLimiter struct {
	mu     sync.Mutex
	rate   float64
	burst  float64
	now    func() time.Time
	bucket map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newTokenLimiter(perMinute, burst int) *tokenLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 10
	}
	return &tokenLimiter{
		rate:   float64(perMinute) / 60.0,
		burst:  float64(burst),
		now:    time.Now,
		bucket: make(map[string]*bucket),
	}
}

func (l *tokenLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.bucket[key]
	if !ok {
		l.bucket[key] = &bucket{tokens: l.burst - 1, last: now}
		return true
	}
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = minFloat(l.burst, b.tokens+elapsed*l.rate)
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens -= 1
	return true
}

// sweep drops buckets that have been idle long enough to be full again.
func (l *tokenLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	refill := time.Duration(l.burst/l.rate) * time.Second
	for key, b := range l.bucket {
		if now.Sub(b.last) > refill {
			delete(l.bucket, key)
		}
	}
}

// Sweep is called periodically from main to bound memory.
func (l *RateLimiter) Sweep() {
	l.ipLimiter.sweep()
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// clientIP is the socket peer unless that peer is a trusted proxy. Behind
// proxies, X-Forwarded-For is read right to left and the first hop that is
// not itself a trusted proxy wins.
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !l.trusted(peer) {
		return peer
	}
	forwarded := r.Header.Values("X-Forwarded-For")
	var hops []string
	for _, value := range forwarded {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				hops = append(hops, part)
			}
		}
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if !l.trusted(hops[i]) {
			return hops[i]
		}
	}
	return peer
}

func (l *RateLimiter) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

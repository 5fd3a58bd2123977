package server

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/logger"
)

// Abuse thresholds. Counters reset every window, so a burst spanning a
// reset can briefly exceed the limit.
const (
	failedAuthAlertThreshold = 5
	requestRateLimit         = 1000
	rateWindow               = 5 * time.Minute
	highRateLogEvery         = 100
)

// AuthMiddleware validates the bearer token and puts the session on the
// request context. It is mounted on the protected route groups only;
// public routes never see it.
func AuthMiddleware(issuer *auth.TokenIssuer, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(HeaderAuthorization)
			token, found := strings.CutPrefix(header, BearerPrefix)
			if !found {
				rejectUnauthenticated(w, r, trustedProxies, detector, header != "")
				return
			}

			session, err := issuer.Verify(token)
			if err != nil {
				rejectUnauthenticated(w, r, trustedProxies, detector, true)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request, trustedProxies []string, detector *SuspiciousActivityDetector, hadToken bool) {
	ip := extractIP(r, trustedProxies)
	detector.RecordFailedAuth(ip)

	log := logger.FromContext(r.Context())
	log.Warn(LogMsgAuthFailed,
		"remote_addr", r.RemoteAddr,
		"path", r.URL.Path,
		"has_token", hadToken,
		"ip", ip)

	http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
}

// RequestSizeLimitMiddleware caps request body size. Sell and open requests
// are tiny; anything large is abuse.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector keeps per-IP counters of failed logins and
// request volume over a sliding reset window.
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		windowStart:      time.Now(),
	}
}

// RecordFailedAuth counts a failed authentication attempt and logs an alert
// once an IP crosses the threshold within the window.
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rotateWindow()
	s.failedAuthByIP[ip]++

	if s.failedAuthByIP[ip] >= failedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", s.failedAuthByIP[ip])
	}
}

// RecordRequest counts a request and reports whether the IP is still under
// the per-window rate limit.
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rotateWindow()
	s.requestCountByIP[ip]++

	count := s.requestCountByIP[ip]
	if count <= requestRateLimit {
		return true
	}

	// Log every Nth blocked request to keep a flood from flooding the log
	if count%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate,
			"ip", ip,
			"count_in_window", count)
	}
	return false
}

// rotateWindow clears the counters when the window has elapsed. Caller
// must hold the mutex.
func (s *SuspiciousActivityDetector) rotateWindow() {
	if time.Since(s.windowStart) > rateWindow {
		s.requestCountByIP = make(map[string]int)
		s.failedAuthByIP = make(map[string]int)
		s.windowStart = time.Now()
	}
}

// RateLimitMiddleware rejects requests from IPs over the rate limit.
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP resolves the client IP. X-Forwarded-For is honored only when
// the direct peer is a configured trusted proxy, and then only its
// rightmost entry, the hop that proxy actually saw.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}

	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware sets the standard browser hardening headers on
// every response.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	headers := [][2]string{
		{HeaderContentType, HeaderValueNoSniff},
		{HeaderFrameOptions, HeaderValueSameOrigin},
		{HeaderXSSProtection, HeaderValueXSSBlock},
		{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

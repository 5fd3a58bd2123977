package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/caseopening"
	"github.com/casefall/casefall/internal/database"
	"github.com/casefall/casefall/internal/economy"
	"github.com/casefall/casefall/internal/handler"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/metrics"
	"github.com/casefall/casefall/internal/sse"
	"github.com/casefall/casefall/internal/user"
)

type Server struct {
	httpServer *http.Server
	hub        *sse.Hub
}

// NewServer wires the HTTP surface: middleware stack, public catalog and
// account routes, session-protected gameplay routes, and the SSE drop feed.
func NewServer(port int, issuer *auth.TokenIssuer, trustedProxies []string, dbPool database.Pool, userService user.Service, caseService caseopening.Service, economyService economy.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	// Chi middleware executes in the order defined, outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.HandleRegister(userService))
			r.Post("/login", handler.HandleLogin(userService))
		})

		r.Get("/cases", handler.HandleListCases(caseService))
		r.Get("/cases/{caseID}", handler.HandleGetCase(caseService))
		r.Get("/cases/{caseID}/droptable", handler.HandleGetDropTable(caseService))

		// Live drop feed (public, read-only)
		r.Get("/live", sse.Handler(hub))

		// Session-protected routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(issuer, trustedProxies, detector))

			r.Get("/me", handler.HandleGetProfile(userService))

			r.Post("/cases/{caseID}/buy", handler.HandleBuyCase(caseService))
			r.Get("/purchases", handler.HandleListPurchases(caseService))
			r.Post("/purchases/{purchaseID}/open", handler.HandleOpenCase(caseService))

			r.Get("/inventory", handler.HandleGetInventory(economyService))
			r.Post("/inventory/{itemID}/sell", handler.HandleSellItem(economyService))
			r.Get("/inventory/{itemID}/price", handler.HandlePriceCheck(economyService))

			r.Get("/transactions", handler.HandleListTransactions(economyService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		hub: hub,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush forwards to the wrapped writer so the SSE feed keeps streaming
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are noise at info level
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

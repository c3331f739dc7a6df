package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/centavo/internal/config"
	"github.com/dukerupert/centavo/internal/handler"
	"github.com/dukerupert/centavo/internal/middleware"
	"github.com/dukerupert/centavo/internal/push"
	"github.com/dukerupert/centavo/internal/store"
	ws "github.com/dukerupert/centavo/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	transactionH  *handler.TransactionHandler
	accountH      *handler.AccountHandler
	notificationH *handler.NotificationHandler
	pushH         *handler.PushHandler
	sweepH        *handler.SweepHandler
	sessionStore  *store.SessionStore
	rateLimiter   *middleware.RateLimiter
	pushService   *push.Service
	dispatcher    *push.Dispatcher
	scheduler     *push.Scheduler
	logger        *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	transactionStore := store.NewTransactionStore(db)
	accountStore := store.NewAccountStore(db)
	pushStore := store.NewPushStore(db)
	notificationStore := store.NewNotificationStore(db)

	// Push service, dispatcher, and scheduler only exist when VAPID
	// keys are configured. The handlers degrade to 503 without them.
	var pushSvc *push.Service
	var dispatcher *push.Dispatcher
	var scheduler *push.Scheduler
	if cfg.PushConfigured() {
		pushLogger := logger.With("component", "push")
		pushSvc = push.NewService(push.Config{
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			Subject:         cfg.VAPIDSubject,
		})
		dispatcher = push.NewDispatcher(accountStore, pushStore, notificationStore, pushSvc, pushLogger)
		if cfg.SweepInterval > 0 {
			scheduler = push.NewScheduler(dispatcher, cfg.SweepInterval, pushLogger)
		}
	}

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		transactionH:  handler.NewTransactionHandler(transactionStore, hub, logger.With("component", "transaction")),
		accountH:      handler.NewAccountHandler(accountStore, hub, logger.With("component", "account")),
		notificationH: handler.NewNotificationHandler(notificationStore, logger.With("component", "notification")),
		pushH:         handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler")),
		sweepH:        handler.NewSweepHandler(dispatcher, logger.With("component", "sweep")),
		sessionStore:  sessionStore,
		rateLimiter:   middleware.NewRateLimiter(),
		pushService:   pushSvc,
		dispatcher:    dispatcher,
		scheduler:     scheduler,
		logger:        logger,
	}
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Scheduler returns the sweep scheduler; nil when push is not
// configured or the interval is zero.
func (s *Server) Scheduler() *push.Scheduler {
	return s.scheduler
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// The sweep trigger is called by external cron services.
	outerMux.HandleFunc("POST /api/sweep", s.sweepH.Run)
	outerMux.HandleFunc("OPTIONS /api/sweep", s.sweepH.Preflight)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/api/", authMiddleware(protectedMux))
	outerMux.Handle("GET /ws", authMiddleware(ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket"))))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session routes
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Transaction API routes
	mux.HandleFunc("POST /api/transactions", s.transactionH.Create)
	mux.HandleFunc("GET /api/transactions", s.transactionH.List)
	mux.HandleFunc("GET /api/transactions/{id}", s.transactionH.Get)
	mux.HandleFunc("PUT /api/transactions/{id}", s.transactionH.Update)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.transactionH.Delete)
	mux.HandleFunc("GET /api/balance", s.transactionH.Balance)

	// Fixed account API routes
	mux.HandleFunc("POST /api/accounts", s.accountH.Create)
	mux.HandleFunc("GET /api/accounts", s.accountH.List)
	mux.HandleFunc("GET /api/accounts/{id}", s.accountH.Get)
	mux.HandleFunc("PUT /api/accounts/{id}", s.accountH.Update)
	mux.HandleFunc("POST /api/accounts/{id}/toggle", s.accountH.ToggleActive)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.accountH.Delete)

	// Notification history API routes
	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.notificationH.MarkRead)
	mux.HandleFunc("POST /api/notifications/read-all", s.notificationH.MarkAllRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", s.notificationH.Delete)

	// Push notification API routes
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
	mux.HandleFunc("POST /api/push/test", s.pushH.TestNotification)
}

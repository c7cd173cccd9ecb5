package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rafthq/raftline/internal/config"
	"github.com/rafthq/raftline/internal/database"
	postgresrepo "github.com/rafthq/raftline/internal/repository/postgres"
	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/handlers"
	"github.com/rafthq/raftline/internal/transport/http/middleware"
	"github.com/rafthq/raftline/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database")

	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()
	logger.Info("connected to redis")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	roomRepo := postgresrepo.NewRoomRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	inviteRepo := postgresrepo.NewInviteRepo(pool)
	projectRepo := postgresrepo.NewProjectRepo(pool)
	notificationRepo := postgresrepo.NewNotificationRepo(pool)
	reportRepo := postgresrepo.NewReportRepo(pool)
	blogRepo := postgresrepo.NewBlogRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	roomService := service.NewRoomService(roomRepo, userRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo, roomRepo, userRepo)
	inviteService := service.NewInviteService(inviteRepo, roomRepo, userRepo, messageRepo, notificationRepo, logger)
	acceptanceService := service.NewAcceptanceService(projectRepo, userRepo, roomRepo, messageRepo, notificationRepo, logger)
	onboardingService := service.NewOnboardingService(userRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	reportService := service.NewReportService(reportRepo, roomRepo)
	blogService := service.NewBlogService(blogRepo, logger)

	// WebSocket hub + real-time notifier
	hub := ws.NewHub(roomRepo, logger)
	go hub.Run()

	notifier := ws.NewHubNotifier(hub, roomRepo, logger)
	roomService.SetNotifier(notifier)
	messageService.SetNotifier(notifier)
	inviteService.SetNotifier(notifier)
	acceptanceService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, rdb, logger)
	roomHandler := handlers.NewRoomHandler(roomService, logger)
	messageHandler := handlers.NewMessageHandler(messageService, logger)
	inviteHandler := handlers.NewInviteHandler(inviteService, logger)
	acceptanceHandler := handlers.NewAcceptanceHandler(acceptanceService, logger)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	reportHandler := handlers.NewReportHandler(reportService, logger)
	blogHandler := handlers.NewBlogHandler(blogService, logger)

	// Middleware
	auth := middleware.Auth(cfg.JWTSecret, rdb)
	gate := middleware.OnboardingGate(userRepo)

	// chat wraps a handler in auth plus the onboarding gate. Auth-only
	// routes (onboarding itself, notifications) skip the gate.
	chat := func(h http.HandlerFunc) http.Handler {
		return auth(gate(h))
	}

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/blog/webhook", blogHandler.Webhook)

	// Protected - Auth & onboarding (no gate: these ARE the onboarding surface)
	mux.Handle("POST /api/v1/auth/logout", auth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/v1/auth/complete-profile", auth(http.HandlerFunc(authHandler.CompleteProfile)))
	mux.Handle("GET /api/v1/onboarding/status", auth(http.HandlerFunc(onboardingHandler.Status)))
	mux.Handle("POST /api/v1/kyc/start", auth(http.HandlerFunc(onboardingHandler.Start)))
	mux.Handle("POST /api/v1/kyc/submit", auth(http.HandlerFunc(onboardingHandler.Submit)))
	mux.Handle("POST /api/v1/kyc/review", auth(http.HandlerFunc(onboardingHandler.Review)))

	// Protected - Notifications
	mux.Handle("GET /api/v1/notifications", auth(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("POST /api/v1/notifications/{id}/read", auth(http.HandlerFunc(notificationHandler.MarkRead)))

	// Protected + gated - Acceptance
	mux.Handle("POST /api/v1/projects/{id}/accept", chat(acceptanceHandler.Accept))

	// Protected + gated - Rooms
	mux.Handle("GET /api/v1/rooms", chat(roomHandler.List))
	mux.Handle("GET /api/v1/rooms/{id}", chat(roomHandler.Get))
	mux.Handle("PATCH /api/v1/rooms/{id}", chat(roomHandler.Rename))
	mux.Handle("POST /api/v1/rooms/{id}/archive", chat(roomHandler.Archive))
	mux.Handle("GET /api/v1/rooms/{id}/members", chat(roomHandler.Members))
	mux.Handle("DELETE /api/v1/rooms/{id}/members/{uid}", chat(roomHandler.RemoveMember))
	mux.Handle("PUT /api/v1/rooms/{id}/mute", chat(roomHandler.SetMuted))
	mux.Handle("GET /api/v1/rooms/{id}/pins", chat(roomHandler.Pins))

	// Protected + gated - Messages
	mux.Handle("GET /api/v1/rooms/{id}/messages", chat(messageHandler.List))
	mux.Handle("POST /api/v1/rooms/{id}/messages", chat(messageHandler.Send))
	mux.Handle("POST /api/v1/rooms/{id}/messages/{mid}/pin", chat(roomHandler.TogglePin))
	mux.Handle("POST /api/v1/rooms/{id}/messages/{mid}/reactions", chat(messageHandler.ToggleReaction))
	mux.Handle("POST /api/v1/rooms/{id}/messages/{mid}/read", chat(messageHandler.MarkRead))
	mux.Handle("PATCH /api/v1/messages/{id}", chat(messageHandler.Edit))
	mux.Handle("DELETE /api/v1/messages/{id}", chat(messageHandler.Delete))

	// Protected + gated - Invites & reports
	mux.Handle("POST /api/v1/rooms/{id}/invites", chat(inviteHandler.Generate))
	mux.Handle("POST /api/v1/invites/join", chat(inviteHandler.Join))
	mux.Handle("POST /api/v1/reports", chat(reportHandler.File))

	// WebSocket (token auth via query param)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, rdb, logger))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: middleware.CORS(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

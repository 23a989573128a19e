package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/harmonylane/lessonbook/internal/cache"
	"github.com/harmonylane/lessonbook/internal/handlers"
	"github.com/harmonylane/lessonbook/internal/mailer"
	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/internal/service"
	"github.com/harmonylane/lessonbook/pkg/config"
	"github.com/harmonylane/lessonbook/pkg/database"
	"github.com/harmonylane/lessonbook/pkg/events"
	"github.com/harmonylane/lessonbook/pkg/logger"
	mw "github.com/harmonylane/lessonbook/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, cfg.Database.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	scheduleCache := cache.NewScheduleCache(redisClient, cfg.Redis.ScheduleTTL)

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	verifyRepo := repository.NewVerifyRepository(pool)
	lessonTypeRepo := repository.NewLessonTypeRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go service.RunTokenCleanup(cleanupCtx, verifyRepo, time.Hour)

	// Outbound mail for the synchronous auth flows; booking and contact
	// mail goes through the notify worker.
	notifier := mailer.NewNotifier(buildMailer(cfg), cfg.App.BaseURL, cfg.App.ContactInbox)

	// Services
	authSvc := service.NewAuthService(userRepo, verifyRepo, notifier, eventBus, cfg.Auth)
	scheduleSvc := service.NewScheduleService(lessonTypeRepo, availabilityRepo, scheduleCache)
	bookingSvc := service.NewBookingService(bookingRepo, lessonTypeRepo, userRepo, eventBus)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, scheduleCache)
	contactSvc := service.NewContactService(contactRepo, eventBus)

	h := handlers.New(authSvc, scheduleSvc, bookingSvc, availabilitySvc, contactSvc, cfg.Auth.JWTSecret)

	contactLimiter := mw.NewRateLimiter(pool, mw.RateLimitConfig{
		Requests: 5,
		Window:   time.Hour,
		KeyFunc:  mw.IPKeyFunc("contact"),
	})
	resetLimiter := mw.NewRateLimiter(pool, mw.RateLimitConfig{
		Requests: 5,
		Window:   time.Hour,
		KeyFunc:  mw.IPKeyFunc("pwreset"),
		SkipFunc: func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/v1/auth/password-reset")
		},
	})

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.CORS([]string{cfg.App.BaseURL}))
	r.Use(mw.Health)

	r.Route("/v1", func(r chi.Router) {
		r.With(resetLimiter.Middleware()).Mount("/auth", h.AuthRoutes())
		r.Mount("/schedule", h.ScheduleRoutes())
		r.Mount("/bookings", h.BookingRoutes())
		r.Mount("/instructor", h.InstructorRoutes())
		r.With(contactLimiter.Middleware()).Mount("/contact", h.ContactRoutes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}

// buildMailer picks the outbound transport: dev logging, MailerSend when
// a key is configured, SMTP otherwise (Mailpit locally).
func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		return mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	}
	return mailer.NewSMTPMailer(
		cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
		cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
	)
}

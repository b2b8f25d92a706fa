package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/session-booking/config"
	"github.com/Eursukkul/session-booking/internal/consumer"
	"github.com/Eursukkul/session-booking/internal/notifier"
	"github.com/Eursukkul/session-booking/internal/repository"
	"github.com/Eursukkul/session-booking/internal/service"
	"github.com/Eursukkul/session-booking/pkg/auth"
	"github.com/Eursukkul/session-booking/pkg/database"
	"github.com/Eursukkul/session-booking/pkg/logger"
	"github.com/Eursukkul/session-booking/pkg/obs"
	"github.com/Eursukkul/session-booking/pkg/rabbitmq"
	"go.uber.org/zap"
)

const serviceName = "booking-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	loc, _ := cfg.Location()

	zlog, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.AppEnv)
	if err != nil {
		zlog.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		zlog.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	// Repositories
	templateRepo := repository.NewTemplateRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Notifications
	var mailer notifier.Mailer = notifier.NewLogMailer(zlog)
	if cfg.SMTPHost != "" {
		mailer = notifier.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	var bookingNotifier notifier.Notifier = notifier.NewDirect(mailer)
	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
		bookingNotifier = notifier.NewQueue(publisher)

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			zlog.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewNotificationConsumer(mailer, zlog).Start(msgs)
		zlog.Info("notification consumer started", zap.String("queue", rabbitmq.QueueName))
	}

	// Services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
	availabilitySvc := service.NewAvailabilityService(templateRepo, reservationRepo, loc, zlog)
	reservationSvc := service.NewReservationService(reservationRepo, templateRepo, bookingNotifier, loc, zlog)
	authSvc := service.NewAuthService(userRepo, issuer, zlog)

	if _, err := availabilitySvc.EnsureDefaultTemplates(ctx); err != nil {
		zlog.Fatal("failed to seed availability", zap.Error(err))
	}
	if cfg.AdminEmail != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zlog.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	e := newRouter(zlog, issuer, services{
		availability: availabilitySvc,
		reservations: reservationSvc,
		auth:         authSvc,
	}, service.RealClock{}, loc)

	go func() {
		zlog.Info("booking service starting", zap.String("port", cfg.ServerPort), zap.String("timezone", loc.String()))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
	zlog.Info("booking service stopped")
}

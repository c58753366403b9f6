package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/Michael4-fab/MedicalLabSimulator/config"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/email"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/handler"
	appointmentHandler "github.com/Michael4-fab/MedicalLabSimulator/internal/handler/appointment"
	patientHandler "github.com/Michael4-fab/MedicalLabSimulator/internal/handler/patient"
	practitionerHandler "github.com/Michael4-fab/MedicalLabSimulator/internal/handler/practitioner"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/middleware"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/repository/postgres"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/router"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/notification"
	patientService "github.com/Michael4-fab/MedicalLabSimulator/internal/service/patient"
	practitionerService "github.com/Michael4-fab/MedicalLabSimulator/internal/service/practitioner"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/scheduling"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/logger"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/messaging"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/messaging/redis"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/metrics"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/validator"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logger.NewLogger(nil)
	zl := log.Zerolog()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	practitionerRepo := postgres.NewPractitionerRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	m := metrics.NewMetrics("medicallab", "scheduling")

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), zl)
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()
	}

	sender := email.NewDualSMTP(smtpConfig(cfg.SMTP.Primary), smtpConfig(cfg.SMTP.Fallback), zl).
		InstrumentSends(m.NotificationsSent)
	notifSvc := notification.NewService(sender, m, zl)

	practitionerSvc := practitionerService.NewService(practitionerRepo, zl)
	patientSvc := patientService.NewService(patientRepo, zl)
	schedulingSvc := scheduling.NewService(
		appointmentRepo,
		practitionerSvc,
		patientRepo,
		notifSvc,
		broker,
		scheduling.NewRealClock(),
		m,
		zl,
	)

	v := validator.New()
	h := handler.NewHandler(db)
	appointmentH := appointmentHandler.NewHandler(schedulingSvc, v)
	patientH := patientHandler.NewHandler(patientSvc, schedulingSvc, v)
	practitionerH := practitionerHandler.NewHandler(practitionerSvc, schedulingSvc, v)

	r := router.NewRouter(appointmentH, patientH, practitionerH, h, router.RouterConfig{
		RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:     cfg.RateLimit.Burst,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "medicallab",
	})
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}

func smtpConfig(c config.SMTPTransportConfig) email.SMTPConfig {
	return email.SMTPConfig{
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		From:     c.From,
		SSL:      c.SSL,
		Timeout:  c.Timeout,
	}
}

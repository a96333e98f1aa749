package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightgds/config"
	"github.com/Domenick1991/flightgds/internal/bootstrap"
	"github.com/Domenick1991/flightgds/internal/cache"
	"github.com/Domenick1991/flightgds/internal/gds"
	"github.com/Domenick1991/flightgds/internal/kafka"
	"github.com/Domenick1991/flightgds/internal/logger"
	"github.com/Domenick1991/flightgds/internal/repository"
	"github.com/Domenick1991/flightgds/internal/service/bookings"
	"github.com/Domenick1991/flightgds/internal/service/reservation"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.NewZeroLog(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	offerCache := cache.NewOfferCache(cfg.Redis, time.Duration(cfg.Offers.TTLHours)*time.Hour)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	gdsClient := gds.NewClient(
		&http.Client{Timeout: time.Duration(cfg.GDS.TimeoutSeconds) * time.Second},
		cfg.GDS.BaseURL,
		cfg.GDS.ClientID,
		cfg.GDS.ClientSecret,
		zlog,
	)

	bookingRepo := repository.NewBookingRepository(pool)
	reservationService := reservation.NewReservationService(
		gdsClient,
		offerCache,
		bookingRepo,
		producer,
		cfg.Kafka.BookingEventsTopic,
		zlog,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	bookingService := bookings.NewBookingService(
		bookingRepo,
		gdsClient,
		producer,
		cfg.Kafka.BookingEventsTopic,
		zlog,
		bookings.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, reservationService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

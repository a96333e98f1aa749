package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightgds/api"
	"github.com/Domenick1991/flightgds/config"
	"github.com/Domenick1991/flightgds/internal/service/bookings"
	"github.com/Domenick1991/flightgds/internal/service/reservation"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, reservationSvc reservation.ReservationUseCase, bookingSvc bookings.BookingUseCase) error {
	srv := newServer(cfg, reservationSvc, bookingSvc)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, reservationSvc reservation.ReservationUseCase, bookingSvc bookings.BookingUseCase) *http.Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	flightHandler := api.NewFlightHandler(reservationSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)

	group := router.Group("/api/flights", api.RequireUser())
	flightHandler.Register(group)
	bookingHandler.Register(group)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(http.StripPrefix("/docs",
			httpSwagger.Handler(httpSwagger.URL("/swagger/flights.swagger.json")))))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}
}

package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/Domenick1991/flightgds/internal/kafka"
	"github.com/Domenick1991/flightgds/internal/logger"
	"github.com/Domenick1991/flightgds/internal/repository"
)

type BookingUseCase interface {
	Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	GetLive(ctx context.Context, userID, bookingID string) (map[string]any, error)
	Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
}

// Gateway is the slice of the GDS client booking retrieval and cancel need.
type Gateway interface {
	GetOrder(ctx context.Context, externalID string) (map[string]any, error)
	CancelOrder(ctx context.Context, externalID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	gateway            Gateway
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             logger.Client
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	gateway Gateway,
	producer Producer,
	bookingTopic string,
	log logger.Client,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		gateway:      gateway,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Get returns the locally persisted booking. No live GDS call is made here;
// callers wanting fresh carrier and seat-map data use GetLive.
func (s *BookingService) Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	return s.locate(ctx, userID, bookingID)
}

// GetLive checks ownership against the local record, then fetches the order
// from the GDS enriched with airline and seat-map reference data.
func (s *BookingService) GetLive(ctx context.Context, userID, bookingID string) (map[string]any, error) {
	booking, err := s.locate(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.gateway.GetOrder(ctx, booking.BookingID)
}

// Cancel issues the remote cancellation and marks the local record
// cancelled. Unknown bookings never reach the GDS.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.locate(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.CancelOrder(ctx, booking.BookingID); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, userID, booking.BookingID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		logger.Field{Key: "user_id", Value: userID},
		logger.Field{Key: "booking_id", Value: updated.BookingID},
	)
	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) locate(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, domain.NewValidationError("booking id is required")
	}

	booking, err := s.bookings.GetByBookingID(ctx, userID, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domain.NewNotFoundError("booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.BookingID,
		UserID:      booking.UserID,
		Origin:      booking.FlightDetails.Origin,
		Destination: booking.FlightDetails.Destination,
		Status:      string(booking.Status),
		CreatedAt:   time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.BookingID, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			logger.Field{Key: "type", Value: eventType},
			logger.Field{Key: "booking_id", Value: booking.BookingID},
			logger.Field{Key: "err", Value: err},
		)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.BookingID, event); err != nil {
			s.logger.Warn("failed to publish notification event",
				logger.Field{Key: "type", Value: eventType},
				logger.Field{Key: "booking_id", Value: booking.BookingID},
				logger.Field{Key: "err", Value: err},
			)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

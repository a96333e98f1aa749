package reservation

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/Domenick1991/flightgds/internal/kafka"
	"github.com/Domenick1991/flightgds/internal/logger"
	"github.com/Domenick1991/flightgds/internal/repository"
	"github.com/google/uuid"
)

type ReservationUseCase interface {
	Search(ctx context.Context, userID string, criteria domain.SearchCriteria) ([]domain.Offer, error)
	Price(ctx context.Context, userID, offerID string) (*domain.PricedOffer, error)
	Book(ctx context.Context, userID string, travelers []domain.Traveler) (*domain.Booking, error)
}

// Gateway is the slice of the GDS client the pipeline needs.
type Gateway interface {
	SearchOffers(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Offer, error)
	PriceOffer(ctx context.Context, offer json.RawMessage) (*domain.PricedOffer, error)
	CreateOrder(ctx context.Context, offer json.RawMessage, travelers []domain.Traveler) (json.RawMessage, error)
}

type OfferCache interface {
	StoreOffers(ctx context.Context, userID string, offers []domain.Offer) error
	GetOffers(ctx context.Context, userID string) ([]domain.Offer, error)
	StorePricedOffer(ctx context.Context, userID string, priced *domain.PricedOffer) error
	GetPricedOffer(ctx context.Context, userID string) (*domain.PricedOffer, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReservationService struct {
	gateway            Gateway
	cache              OfferCache
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             logger.Client
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func NewReservationService(
	gateway Gateway,
	cache OfferCache,
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	log logger.Client,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		gateway:      gateway,
		cache:        cache,
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Search runs a fresh offer search and overwrites the user's prior offer set.
func (s *ReservationService) Search(ctx context.Context, userID string, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	if criteria.Origin == "" || criteria.Destination == "" || criteria.DepartureDate == "" {
		return nil, domain.NewValidationError("origin, destination and departure date are required")
	}
	if criteria.Children < 0 {
		return nil, domain.NewValidationError("children must not be negative")
	}
	if criteria.TravelClass != "" && !criteria.TravelClass.Valid() {
		return nil, domain.NewValidationError("invalid travel class")
	}

	offers, err := s.gateway.SearchOffers(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if err := s.cache.StoreOffers(ctx, userID, offers); err != nil {
		return nil, err
	}

	s.logger.Info("offer set cached",
		logger.Field{Key: "user_id", Value: userID},
		logger.Field{Key: "offers", Value: len(offers)},
	)
	return offers, nil
}

// Price reprices one offer out of the user's current offer set and
// overwrites the user's priced offer. Unknown offer ids never reach the GDS.
func (s *ReservationService) Price(ctx context.Context, userID, offerID string) (*domain.PricedOffer, error) {
	if offerID == "" {
		return nil, domain.NewValidationError("flight offer id is required")
	}

	offers, err := s.cache.GetOffers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, domain.NewStateError("no flight offers found, search again")
	}

	var selected *domain.Offer
	for i := range offers {
		if offers[i].ID == offerID {
			selected = &offers[i]
			break
		}
	}
	if selected == nil {
		return nil, domain.NewNotFoundError("flight offer not found")
	}

	priced, err := s.gateway.PriceOffer(ctx, selected.Raw)
	if err != nil {
		return nil, err
	}

	if err := s.cache.StorePricedOffer(ctx, userID, priced); err != nil {
		return nil, err
	}
	return priced, nil
}

// Book commits the user's current priced offer. The cached offer set and
// priced offer are left in place afterwards; within the TTL window a user
// can issue another book call against the same priced offer.
func (s *ReservationService) Book(ctx context.Context, userID string, travelers []domain.Traveler) (*domain.Booking, error) {
	if len(travelers) == 0 {
		return nil, domain.NewValidationError("traveler information is required")
	}

	priced, err := s.cache.GetPricedOffer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if priced == nil {
		return nil, domain.NewStateError("no priced offer found, search and price again")
	}

	offer, ok := priced.FirstFlightOffer()
	if !ok {
		return nil, domain.NewStateError("no priced offer found, search and price again")
	}

	raw, err := s.gateway.CreateOrder(ctx, offer, travelers)
	if err != nil {
		return nil, err
	}

	booking := buildBooking(userID, raw, travelers)
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		logger.Field{Key: "user_id", Value: userID},
		logger.Field{Key: "booking_id", Value: booking.BookingID},
	)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// buildBooking assembles the durable record from the vendor confirmation.
// The booking identifier comes from the tagged resolver; when the vendor
// returned no usable field at all, the current timestamp is the last resort.
func buildBooking(userID string, raw json.RawMessage, travelers []domain.Traveler) *domain.Booking {
	_, bookingID, ok := domain.ResolveBookingID(raw)
	if !ok {
		bookingID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	var vendor struct {
		Status        string                `json:"status"`
		FlightDetails *domain.FlightDetails `json:"flightDetails"`
		PNR           string                `json:"pnr"`
		GDSReference  string                `json:"gdsBookingReference"`
	}
	_ = json.Unmarshal(raw, &vendor)

	details := domain.FlightDetails{}
	if vendor.FlightDetails != nil {
		details = *vendor.FlightDetails
	}
	if details.PNR == "" {
		details.PNR = vendor.PNR
	}
	if details.GDSBookingReference == "" {
		details.GDSBookingReference = vendor.GDSReference
	}
	if len(details.Passengers) == 0 {
		details.Passengers = travelers
	}

	status := domain.BookingStatusConfirmed
	switch strings.ToLower(vendor.Status) {
	case string(domain.BookingStatusPending):
		status = domain.BookingStatusPending
	case string(domain.BookingStatusCancelled):
		status = domain.BookingStatusCancelled
	}

	return &domain.Booking{
		ID:            uuid.NewString(),
		BookingID:     bookingID,
		UserID:        userID,
		FlightDetails: details,
		Status:        status,
		RawResponse:   raw,
	}
}

func (s *ReservationService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
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

var _ ReservationUseCase = (*ReservationService)(nil)

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByBookingID(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, userID, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	details, err := json.Marshal(booking.FlightDetails)
	if err != nil {
		return fmt.Errorf("encode flight details: %w", err)
	}

	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, booking_id, user_id, flight_details, status, raw_response)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		booking.ID, booking.BookingID, booking.UserID, details, booking.Status, []byte(booking.RawResponse)).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByBookingID(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, booking_id, user_id, flight_details, status, raw_response, created_at, updated_at
		FROM bookings WHERE user_id=$1 AND booking_id=$2`, userID, bookingID)
	return scanBooking(row)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, userID, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE user_id=$2 AND booking_id=$3
		RETURNING id, booking_id, user_id, flight_details, status, raw_response, created_at, updated_at`,
		status, userID, bookingID)
	return scanBooking(row)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b       domain.Booking
		details []byte
		raw     []byte
	)
	if err := row.Scan(&b.ID, &b.BookingID, &b.UserID, &details, &b.Status, &raw, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &b.FlightDetails); err != nil {
			return nil, fmt.Errorf("decode flight details: %w", err)
		}
	}
	b.RawResponse = json.RawMessage(raw)
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)

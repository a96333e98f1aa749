package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

// fakeRow feeds canned column values to scanBooking.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = r.values[i].(string)
		case *domain.BookingStatus:
			*v = r.values[i].(domain.BookingStatus)
		case *[]byte:
			*v = r.values[i].([]byte)
		case *time.Time:
			*v = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanBooking(t *testing.T) {
	now := time.Now()
	details, _ := json.Marshal(domain.FlightDetails{PNR: "ABC123", Origin: "SYD"})

	booking, err := scanBooking(fakeRow{values: []any{
		"internal-id",
		"eJzTd9f3",
		"user-1",
		details,
		domain.BookingStatusConfirmed,
		[]byte(`{"id":"eJzTd9f3"}`),
		now,
		now,
	}})

	require.NoError(t, err)
	assert.Equal(t, "eJzTd9f3", booking.BookingID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "ABC123", booking.FlightDetails.PNR)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.JSONEq(t, `{"id":"eJzTd9f3"}`, string(booking.RawResponse))
}

func TestScanBooking_NoRows(t *testing.T) {
	booking, err := scanBooking(fakeRow{err: pgx.ErrNoRows})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

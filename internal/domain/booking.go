package domain

import (
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Traveler struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type FlightDetails struct {
	PNR                 string     `json:"pnr,omitempty"`
	GDSBookingReference string     `json:"gdsBookingReference,omitempty"`
	Origin              string     `json:"origin,omitempty"`
	Destination         string     `json:"destination,omitempty"`
	DepartureDate       string     `json:"departureDate,omitempty"`
	ReturnDate          string     `json:"returnDate,omitempty"`
	Passengers          []Traveler `json:"passengers,omitempty"`
	Price               Price      `json:"price"`
}

// Booking is the durable record of one successful book call. BookingID is
// the resolved external identifier callers use for retrieval and cancel;
// RawResponse keeps the full vendor confirmation payload.
type Booking struct {
	ID            string          `json:"-"`
	BookingID     string          `json:"bookingId"`
	UserID        string          `json:"userId"`
	FlightDetails FlightDetails   `json:"flightDetails"`
	Status        BookingStatus   `json:"status"`
	RawResponse   json.RawMessage `json:"rawResponse"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

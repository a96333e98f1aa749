package domain

import (
	"encoding/json"
	"net/url"
	"strings"
)

// BookingIDField names the vendor field a booking identifier was taken from.
type BookingIDField string

const (
	BookingIDFieldID            BookingIDField = "id"
	BookingIDFieldBookingID     BookingIDField = "bookingId"
	BookingIDFieldRecordLocator BookingIDField = "pnr"
	BookingIDFieldGDSReference  BookingIDField = "gdsBookingReference"
	BookingIDFieldNone          BookingIDField = ""
)

// ResolveBookingID extracts the durable booking identifier from a vendor
// confirmation payload. Vendors are inconsistent about where the identifier
// lives, so fields are tried in a fixed priority order. The chosen value is
// percent-decoded when needed. ok is false when no candidate field is set;
// the caller decides the fallback.
func ResolveBookingID(raw json.RawMessage) (BookingIDField, string, bool) {
	var fields struct {
		ID                  string `json:"id"`
		BookingID           string `json:"bookingId"`
		PNR                 string `json:"pnr"`
		GDSBookingReference string `json:"gdsBookingReference"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return BookingIDFieldNone, "", false
	}

	candidates := []struct {
		field BookingIDField
		value string
	}{
		{BookingIDFieldID, fields.ID},
		{BookingIDFieldBookingID, fields.BookingID},
		{BookingIDFieldRecordLocator, fields.PNR},
		{BookingIDFieldGDSReference, fields.GDSBookingReference},
	}
	for _, c := range candidates {
		if c.value != "" {
			return c.field, decodeIfEncoded(c.value), true
		}
	}
	return BookingIDFieldNone, "", false
}

func decodeIfEncoded(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	decoded, err := url.QueryUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}

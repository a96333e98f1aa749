package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBookingID_PrefersID(t *testing.T) {
	raw := json.RawMessage(`{"id":"order-1","bookingId":"other","pnr":"PNR1","gdsBookingReference":"REF1"}`)

	field, value, ok := ResolveBookingID(raw)

	assert.True(t, ok)
	assert.Equal(t, BookingIDFieldID, field)
	assert.Equal(t, "order-1", value)
}

func TestResolveBookingID_FallbackOrder(t *testing.T) {
	field, value, ok := ResolveBookingID(json.RawMessage(`{"bookingId":"bk-9","pnr":"PNR1"}`))
	assert.True(t, ok)
	assert.Equal(t, BookingIDFieldBookingID, field)
	assert.Equal(t, "bk-9", value)

	field, value, ok = ResolveBookingID(json.RawMessage(`{"pnr":"PNR1","gdsBookingReference":"REF1"}`))
	assert.True(t, ok)
	assert.Equal(t, BookingIDFieldRecordLocator, field)
	assert.Equal(t, "PNR1", value)
}

func TestResolveBookingID_DecodesGDSReference(t *testing.T) {
	raw := json.RawMessage(`{"gdsBookingReference":"eJzTd9f3%2Bqx4"}`)

	field, value, ok := ResolveBookingID(raw)

	assert.True(t, ok)
	assert.Equal(t, BookingIDFieldGDSReference, field)
	assert.Equal(t, "eJzTd9f3+qx4", value)
}

func TestResolveBookingID_NotFound(t *testing.T) {
	field, value, ok := ResolveBookingID(json.RawMessage(`{"type":"flight-order"}`))

	assert.False(t, ok)
	assert.Equal(t, BookingIDFieldNone, field)
	assert.Empty(t, value)
}

func TestResolveBookingID_InvalidEncodingKeptRaw(t *testing.T) {
	_, value, ok := ResolveBookingID(json.RawMessage(`{"id":"bad%zz"}`))

	assert.True(t, ok)
	assert.Equal(t, "bad%zz", value)
}

func TestOfferRoundTrip(t *testing.T) {
	raw := `{"id":"2","type":"flight-offer","price":{"total":"512.70"}}`

	var offer Offer
	assert.NoError(t, json.Unmarshal([]byte(raw), &offer))
	assert.Equal(t, "2", offer.ID)

	out, err := json.Marshal(offer)
	assert.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestPricedOfferFirstFlightOffer(t *testing.T) {
	raw := `{"type":"flight-offers-pricing","flightOffers":[{"id":"2"},{"id":"3"}]}`

	var priced PricedOffer
	assert.NoError(t, json.Unmarshal([]byte(raw), &priced))

	first, ok := priced.FirstFlightOffer()
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"2"}`, string(first))

	var empty PricedOffer
	assert.NoError(t, json.Unmarshal([]byte(`{"type":"flight-offers-pricing"}`), &empty))
	_, ok = empty.FirstFlightOffer()
	assert.False(t, ok)
}

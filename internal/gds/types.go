package gds

import (
	"encoding/json"

	"github.com/Domenick1991/flightgds/internal/domain"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type searchResponse struct {
	Data []domain.Offer `json:"data"`
}

type pricingRequest struct {
	Data pricingRequestData `json:"data"`
}

type pricingRequestData struct {
	Type         string            `json:"type"`
	FlightOffers []json.RawMessage `json:"flightOffers"`
}

type pricingResponse struct {
	Data domain.PricedOffer `json:"data"`
}

type orderRequest struct {
	Data orderRequestData `json:"data"`
}

type orderRequestData struct {
	Type         string            `json:"type"`
	FlightOffers []json.RawMessage `json:"flightOffers"`
	Travelers    []orderTraveler   `json:"travelers"`
}

// orderTraveler is the vendor wire shape for one passenger.
type orderTraveler struct {
	ID      string           `json:"id"`
	Name    travelerName     `json:"name"`
	Contact *travelerContact `json:"contact,omitempty"`
}

type travelerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type travelerContact struct {
	EmailAddress string          `json:"emailAddress,omitempty"`
	Phones       []travelerPhone `json:"phones,omitempty"`
}

type travelerPhone struct {
	DeviceType string `json:"deviceType"`
	Number     string `json:"number"`
}

type orderResponse struct {
	Data json.RawMessage `json:"data"`
}

// orderSegments mirrors just enough of an order payload to walk its
// itinerary segments for carrier codes.
type orderSegments struct {
	FlightOffers []struct {
		Itineraries []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"flightOffers"`
}

type airlineResponse struct {
	Data []json.RawMessage `json:"data"`
}

type seatmapResponse struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries struct {
		Locations map[string]json.RawMessage `json:"locations"`
	} `json:"dictionaries"`
}

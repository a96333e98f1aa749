package domain

import "encoding/json"

type CabinClass string

const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

type SearchCriteria struct {
	Origin        string     `json:"origin" form:"origin"`
	Destination   string     `json:"destination" form:"destination"`
	DepartureDate string     `json:"departure_date" form:"departureDate"`
	ReturnDate    string     `json:"return_date" form:"returnDate"`
	Adults        int        `json:"adults" form:"adults"`
	Children      int        `json:"children" form:"children"`
	TravelClass   CabinClass `json:"travel_class" form:"travelClass"`
}

// Offer is a single flight offer as returned by the GDS. The vendor payload
// is kept byte-for-byte so it can be resubmitted for pricing unchanged; only
// the offer id is surfaced for selection.
type Offer struct {
	ID  string
	Raw json.RawMessage
}

func (o Offer) MarshalJSON() ([]byte, error) {
	return o.Raw, nil
}

func (o *Offer) UnmarshalJSON(data []byte) error {
	var peek struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return err
	}
	o.ID = peek.ID
	o.Raw = append(o.Raw[:0], data...)
	return nil
}

// PricedOffer is the vendor pricing payload for one selected offer. The
// repriced flight offers inside it are what the booking call submits.
type PricedOffer struct {
	FlightOffers []json.RawMessage
	Raw          json.RawMessage
}

func (p PricedOffer) MarshalJSON() ([]byte, error) {
	return p.Raw, nil
}

func (p *PricedOffer) UnmarshalJSON(data []byte) error {
	var peek struct {
		FlightOffers []json.RawMessage `json:"flightOffers"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return err
	}
	p.FlightOffers = peek.FlightOffers
	p.Raw = append(p.Raw[:0], data...)
	return nil
}

// FirstFlightOffer returns the repriced offer submitted for booking.
func (p *PricedOffer) FirstFlightOffer() (json.RawMessage, bool) {
	if len(p.FlightOffers) == 0 {
		return nil, false
	}
	return p.FlightOffers[0], true
}

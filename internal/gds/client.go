package gds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/Domenick1991/flightgds/internal/logger"
)

// tokenExpiryMargin is subtracted from the vendor-reported token lifetime so
// a token is never used right at its expiry boundary.
const tokenExpiryMargin = 30 * time.Second

// Client talks to the external GDS REST API. It holds no local state besides
// the cached OAuth2 access token.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	logger       logger.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(httpClient *http.Client, baseURL, clientID, clientSecret string, logger logger.Client) *Client {
	return &Client{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
	}
}

func (c *Client) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewUpstreamError(fmt.Sprintf("gds token request failed: %v", err), 0, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", translateError(resp.StatusCode, raw)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)
	return c.token, nil
}

// do executes one authenticated call. Non-2xx responses go through the error
// translator; transport failures surface as upstream errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewUpstreamError(fmt.Sprintf("gds call failed: %v", err), 0, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return translateError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gds response: %w", err)
	}
	return nil
}

// SearchOffers runs a flight offers search. Counts are string-encoded and
// optional parameters included only when provided.
func (c *Client) SearchOffers(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	adults := criteria.Adults
	if adults <= 0 {
		adults = 1
	}

	q := url.Values{}
	q.Set("originLocationCode", criteria.Origin)
	q.Set("destinationLocationCode", criteria.Destination)
	q.Set("departureDate", criteria.DepartureDate)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("currencyCode", "USD")
	q.Set("max", "20")
	if criteria.ReturnDate != "" {
		q.Set("returnDate", criteria.ReturnDate)
	}
	if criteria.Children > 0 {
		q.Set("children", strconv.Itoa(criteria.Children))
	}
	if criteria.TravelClass != "" {
		q.Set("travelClass", string(criteria.TravelClass))
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/v2/shopping/flight-offers", q, nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("flight offers search completed",
		logger.Field{Key: "origin", Value: criteria.Origin},
		logger.Field{Key: "destination", Value: criteria.Destination},
		logger.Field{Key: "offers", Value: len(resp.Data)},
	)
	return resp.Data, nil
}

// PriceOffer submits one offer for repricing.
func (c *Client) PriceOffer(ctx context.Context, offer json.RawMessage) (*domain.PricedOffer, error) {
	body := pricingRequest{
		Data: pricingRequestData{
			Type:         "flight-offers-pricing",
			FlightOffers: []json.RawMessage{offer},
		},
	}

	var resp pricingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/shopping/flight-offers/pricing", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateOrder books one priced flight offer for the given travelers and
// returns the vendor confirmation payload.
func (c *Client) CreateOrder(ctx context.Context, offer json.RawMessage, travelers []domain.Traveler) (json.RawMessage, error) {
	wire := make([]orderTraveler, 0, len(travelers))
	for i, t := range travelers {
		ot := orderTraveler{
			ID:   strconv.Itoa(i + 1),
			Name: travelerName{FirstName: t.FirstName, LastName: t.LastName},
		}
		if t.Email != "" || t.Phone != "" {
			contact := &travelerContact{EmailAddress: t.Email}
			if t.Phone != "" {
				contact.Phones = []travelerPhone{{DeviceType: "MOBILE", Number: t.Phone}}
			}
			ot.Contact = contact
		}
		wire = append(wire, ot)
	}

	body := orderRequest{
		Data: orderRequestData{
			Type:         "flight-order",
			FlightOffers: []json.RawMessage{offer},
			Travelers:    wire,
		},
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v1/booking/flight-orders", nil, body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("flight order created")
	return resp.Data, nil
}

// GetOrder fetches a booked order and enriches it with airline reference
// data for every distinct carrier in its itineraries plus the order's seat
// maps. Individual airline lookups that fail are dropped; they never fail
// the aggregate call.
func (c *Client) GetOrder(ctx context.Context, externalID string) (map[string]any, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/v1/booking/flight-orders/"+url.PathEscape(externalID), nil, nil, &resp); err != nil {
		return nil, err
	}

	var segs orderSegments
	if err := json.Unmarshal(resp.Data, &segs); err != nil {
		return nil, fmt.Errorf("failed to decode order itineraries: %w", err)
	}
	airlines := c.fetchAirlines(ctx, distinctCarrierCodes(segs))

	seatmaps, err := c.fetchSeatmaps(ctx, externalID)
	if err != nil {
		return nil, err
	}

	merged := map[string]any{}
	if err := json.Unmarshal(resp.Data, &merged); err != nil {
		return nil, fmt.Errorf("failed to decode order payload: %w", err)
	}
	merged["airlines"] = airlines
	merged["seatmaps"] = seatmaps.Data
	merged["seatmapLocations"] = seatmaps.Dictionaries.Locations
	return merged, nil
}

// CancelOrder issues a cancellation for the given external order id.
func (c *Client) CancelOrder(ctx context.Context, externalID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/booking/flight-orders/"+url.PathEscape(externalID), nil, nil, nil)
}

func (c *Client) fetchAirlines(ctx context.Context, codes []string) []json.RawMessage {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		airlines = make([]json.RawMessage, 0, len(codes))
	)

	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()

			q := url.Values{}
			q.Set("airlineCodes", code)

			var resp airlineResponse
			if err := c.do(ctx, http.MethodGet, "/v1/reference-data/airlines", q, nil, &resp); err != nil {
				c.logger.Warn("airline lookup failed",
					logger.Field{Key: "carrier", Value: code},
					logger.Field{Key: "err", Value: err},
				)
				return
			}
			if len(resp.Data) == 0 {
				return
			}

			mu.Lock()
			airlines = append(airlines, resp.Data[0])
			mu.Unlock()
		}(code)
	}
	wg.Wait()

	return airlines
}

func (c *Client) fetchSeatmaps(ctx context.Context, orderID string) (*seatmapResponse, error) {
	q := url.Values{}
	q.Set("flightOrderId", orderID)

	var resp seatmapResponse
	if err := c.do(ctx, http.MethodGet, "/v1/shopping/seatmaps", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func distinctCarrierCodes(segs orderSegments) []string {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, offer := range segs.FlightOffers {
		for _, itinerary := range offer.Itineraries {
			for _, segment := range itinerary.Segments {
				if segment.CarrierCode == "" || seen[segment.CarrierCode] {
					continue
				}
				seen[segment.CarrierCode] = true
				codes = append(codes, segment.CarrierCode)
			}
		}
	}
	return codes
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightgds/config"
	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/redis/go-redis/v9"
)

// OfferCache keeps each user's latest search results and latest priced offer
// in Redis. One live entry per user; a new store overwrites the prior one and
// resets the TTL clock. Expiry is enforced by Redis, not by application code.
type OfferCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOfferCache(cfg config.RedisConfig, ttl time.Duration) *OfferCache {
	return &OfferCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *OfferCache) StoreOffers(ctx context.Context, userID string, offers []domain.Offer) error {
	payload, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, offersKey(userID), payload, c.ttl).Err()
}

func (c *OfferCache) GetOffers(ctx context.Context, userID string) ([]domain.Offer, error) {
	data, err := c.client.Get(ctx, offersKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var offers []domain.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *OfferCache) StorePricedOffer(ctx context.Context, userID string, priced *domain.PricedOffer) error {
	payload, err := json.Marshal(priced)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pricedKey(userID), payload, c.ttl).Err()
}

func (c *OfferCache) GetPricedOffer(ctx context.Context, userID string) (*domain.PricedOffer, error) {
	data, err := c.client.Get(ctx, pricedKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var priced domain.PricedOffer
	if err := json.Unmarshal(data, &priced); err != nil {
		return nil, err
	}
	return &priced, nil
}

func offersKey(userID string) string {
	return fmt.Sprintf("offers:user:%s", userID)
}

func pricedKey(userID string) string {
	return fmt.Sprintf("priced:user:%s", userID)
}

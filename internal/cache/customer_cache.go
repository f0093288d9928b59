package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wichananm65/zoo-backend/internal/customer"
)

const keyCustomers = "zoo:customers"

// CustomerCache caches the customer list in Redis.
type CustomerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCustomerCache(rdb *redis.Client, ttl time.Duration) *CustomerCache {
	return &CustomerCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list or nil on a miss.
func (c *CustomerCache) GetList(ctx context.Context) ([]customer.Customer, error) {
	b, err := c.rdb.Get(ctx, keyCustomers).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := make([]customer.Customer, 0)
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *CustomerCache) SetList(ctx context.Context, list []customer.Customer) error {
	if list == nil {
		list = []customer.Customer{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyCustomers, b, c.ttl).Err()
}

// Invalidate drops the cached list after a signup.
func (c *CustomerCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyCustomers).Err()
}

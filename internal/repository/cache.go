package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
)

const (
	sessionKeyPrefix = "checkout:"
	defaultCacheTTL  = 5 * time.Minute
)

// RedisSessionCache keeps recently touched checkout sessions in Redis. The
// TTL also bounds how long an abandoned session lingers here; the gateway's
// own session expiry is authoritative for the payment itself.
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

func NewRedisSessionCache(cfg config.RedisConfig, logger *logrus.Entry) *RedisSessionCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisSessionCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves a session from cache, (nil, nil) on a miss.
func (c *RedisSessionCache) Get(ctx context.Context, id string) (*checkout.Session, error) {
	key := sessionKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.WithFields(logrus.Fields{"session_id": id}).Debug("Session cache miss")
		return nil, nil
	}
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"session_id": id,
			"error":      err.Error(),
		}).Error("Session cache get error")
		return nil, err
	}

	var session checkout.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{"session_id": id}).Debug("Session cache hit")
	return &session, nil
}

// Set stores a session in cache.
func (c *RedisSessionCache) Set(ctx context.Context, session *checkout.Session) error {
	key := sessionKeyPrefix + session.ID

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Session cache set error")
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"ttl":        c.ttl.String(),
	}).Debug("Session cached")
	return nil
}

// Delete removes a session from cache.
func (c *RedisSessionCache) Delete(ctx context.Context, id string) error {
	key := sessionKeyPrefix + id

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.WithFields(logrus.Fields{
			"session_id": id,
			"error":      err.Error(),
		}).Error("Session cache delete error")
		return err
	}

	c.logger.WithFields(logrus.Fields{"session_id": id}).Debug("Session deleted from cache")
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docuverify/ocr-property-verification/dto"
	"github.com/docuverify/ocr-property-verification/logger"
	"github.com/docuverify/ocr-property-verification/service"
	"github.com/redis/go-redis/v9"
)

func marshalPerField(perField map[string]dto.MatchStatus) ([]byte, error) {
	data, err := json.Marshal(perField)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal per-field map: %w", err)
	}
	return data, nil
}

// CachedReferenceLookup is a read-through cache in front of the
// reference store. Only found records are cached; a missing reference
// always goes back to the store so freshly seeded records show up
// immediately.
type CachedReferenceLookup struct {
	inner service.ReferenceLookup
	rdb   *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

func NewCachedReferenceLookup(inner service.ReferenceLookup, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedReferenceLookup {
	return &CachedReferenceLookup{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   log,
	}
}

// ConnectRedis opens a redis client and verifies it is reachable.
func ConnectRedis(ctx context.Context, address, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func (c *CachedReferenceLookup) FindAadhaarByNumber(ctx context.Context, number string) (*dto.ReferenceAadhaarRecord, error) {
	key := "ref:aadhaar:" + number

	var cached dto.ReferenceAadhaarRecord
	if c.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rec, err := c.inner.FindAadhaarByNumber(ctx, number)
	if err != nil || rec == nil {
		return rec, err
	}
	c.cacheSet(ctx, key, rec)
	return rec, nil
}

func (c *CachedReferenceLookup) FindPANByNumber(ctx context.Context, number string) (*dto.ReferencePANRecord, error) {
	key := "ref:pan:" + number

	var cached dto.ReferencePANRecord
	if c.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rec, err := c.inner.FindPANByNumber(ctx, number)
	if err != nil || rec == nil {
		return rec, err
	}
	c.cacheSet(ctx, key, rec)
	return rec, nil
}

func (c *CachedReferenceLookup) FindECBySurveyNumber(ctx context.Context, surveyNumber string) (*dto.ReferenceECRecord, error) {
	key := "ref:property:" + surveyNumber

	var cached dto.ReferenceECRecord
	if c.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rec, err := c.inner.FindECBySurveyNumber(ctx, surveyNumber)
	if err != nil || rec == nil {
		return rec, err
	}
	c.cacheSet(ctx, key, rec)
	return rec, nil
}

// cacheGet reports whether key was present and unmarshaled into out.
// Cache failures degrade to a store read.
func (c *CachedReferenceLookup) cacheGet(ctx context.Context, key string, out interface{}) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn("cache entry corrupt", map[string]interface{}{
			"key": key,
		})
		return false
	}
	return true
}

func (c *CachedReferenceLookup) cacheSet(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

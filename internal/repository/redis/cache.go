// Package redis caches built payroll summary reports.
package redis

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/go-redis/redis/v8"
)

const (
	summaryKeyPrefix = "payroll:summary:"
	scanBatch        = 100
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient dials Redis and pings it once.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

type summaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) payroll.SummaryCache {
	return &summaryCache{rdb: rdb, ttl: ttl}
}

func summaryKey(periodID string) string {
	return summaryKeyPrefix + periodID
}

func (c *summaryCache) Get(ctx context.Context, periodID string) (payroll.SummaryReport, bool, error) {
	raw, err := c.rdb.Get(ctx, summaryKey(periodID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return payroll.SummaryReport{}, false, nil
	}
	if err != nil {
		return payroll.SummaryReport{}, false, fmt.Errorf("get cached summary %s: %w", periodID, err)
	}

	var report payroll.SummaryReport
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&report); err != nil {
		return payroll.SummaryReport{}, false, fmt.Errorf("decode cached summary %s: %w", periodID, err)
	}
	report.EnsureBuckets()
	return report, true, nil
}

func (c *summaryCache) Set(ctx context.Context, periodID string, report payroll.SummaryReport) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(report); err != nil {
		return fmt.Errorf("encode summary %s: %w", periodID, err)
	}
	if err := c.rdb.Set(ctx, summaryKey(periodID), buf.Bytes(), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache summary %s: %w", periodID, err)
	}
	return nil
}

func (c *summaryCache) Invalidate(ctx context.Context, periodID string) error {
	if err := c.rdb.Del(ctx, summaryKey(periodID)).Err(); err != nil {
		return fmt.Errorf("invalidate summary %s: %w", periodID, err)
	}
	return nil
}

// InvalidateAll walks the summary keys with SCAN so Redis is never blocked by KEYS.
func (c *summaryCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, summaryKeyPrefix+"*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("invalidate summaries: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan summaries: %w", err)
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("invalidate summaries: %w", err)
		}
	}
	return nil
}

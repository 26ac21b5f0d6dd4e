// Package redis caches chart-of-accounts reads in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reporting/internal/middleware"
	goredis "github.com/redis/go-redis/v9"
)

const namespace = "ledger:chart"

// Client is the subset of the go-redis client used by the cache.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// ChartCache stores each company's chart as one JSON document with a TTL.
// Cache failures are logged and fall through to the wrapped reader.
type ChartCache struct {
	client Client
	ttl    time.Duration
}

// NewChartCache creates a cache writing through client.
func NewChartCache(client Client, ttl time.Duration) *ChartCache {
	return &ChartCache{client: client, ttl: ttl}
}

// NewClient builds a go-redis client from a redis:// URL.
func NewClient(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func key(companyID string) string {
	return namespace + ":" + companyID
}

// Wrap returns a chart reader for companyID that consults the cache first.
func (c *ChartCache) Wrap(companyID string, next portsrepo.ChartReader) portsrepo.ChartReader {
	return &cachedChart{cache: c, companyID: companyID, next: next}
}

// Invalidate drops the cached chart of companyID.
func (c *ChartCache) Invalidate(ctx context.Context, companyID string) error {
	return c.client.Del(ctx, key(companyID)).Err()
}

func (c *ChartCache) load(ctx context.Context, companyID string) ([]domain.Account, bool) {
	raw, err := c.client.Get(ctx, key(companyID)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Chart cache read failed",
				slog.String("company_id", companyID), slog.String("error", err.Error()))
		}
		return nil, false
	}
	var accounts []domain.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Chart cache entry is corrupt",
			slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, false
	}
	return accounts, true
}

func (c *ChartCache) store(ctx context.Context, companyID string, accounts []domain.Account) {
	raw, err := json.Marshal(accounts)
	if err == nil {
		err = c.client.Set(ctx, key(companyID), raw, c.ttl).Err()
	}
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Chart cache write failed",
			slog.String("company_id", companyID), slog.String("error", err.Error()))
	}
}

type cachedChart struct {
	cache     *ChartCache
	companyID string
	next      portsrepo.ChartReader
}

var _ portsrepo.ChartReader = (*cachedChart)(nil)

func (c *cachedChart) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if accounts, ok := c.cache.load(ctx, c.companyID); ok {
		return accounts, nil
	}
	accounts, err := c.next.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.store(ctx, c.companyID, accounts)
	return accounts, nil
}

// GetAccount answers from a cached chart when one is present. A miss on the
// cached chart still asks the wrapped reader, as the account may be newer
// than the cache entry.
func (c *cachedChart) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accounts, ok := c.cache.load(ctx, c.companyID); ok {
		for i := range accounts {
			if accounts[i].AccountID == accountID {
				return &accounts[i], nil
			}
		}
	}
	return c.next.GetAccount(ctx, accountID)
}

package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// maxStoredRuns bounds the run history list kept in Redis.
const maxStoredRuns = 1000

// RedisStore implements Store on Redis. Offer ids live in a set, each offer in
// a hash, and run history in a capped list of JSON documents.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to the Redis server described by url
// (redis://[:password@]host:port/db).
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	if prefix == "" {
		prefix = "offers"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) idsKey() string            { return s.prefix + ":ids" }
func (s *RedisStore) offerKey(id string) string { return s.prefix + ":offer:" + id }
func (s *RedisStore) runsKey() string           { return s.prefix + ":runs" }

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ping verifies the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Init has no schema to create; it only checks connectivity.
func (s *RedisStore) Init(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("initializing redis store: %w", err)
	}
	return nil
}

// ExistingIDs returns the ids of every stored offer.
func (s *RedisStore) ExistingIDs(ctx context.Context) (domain.IDSet, error) {
	ids, err := s.rdb.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("reading offer ids: %w", err)
	}
	return domain.NewIDSet(ids...), nil
}

// InsertOffer inserts o unless its id is already stored. HSETNX leaves the
// fields of an existing offer untouched.
func (s *RedisStore) InsertOffer(ctx context.Context, o *domain.Offer) error {
	key := s.offerKey(o.ID)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, s.idsKey(), o.ID)
		pipe.HSetNX(ctx, key, "title", o.Title)
		pipe.HSetNX(ctx, key, "price", strconv.FormatFloat(o.Price, 'f', -1, 64))
		pipe.HSetNX(ctx, key, "permalink", o.Permalink)
		pipe.HSetNX(ctx, key, "timestamp", now)
		return nil
	})
	if err != nil {
		return fmt.Errorf("inserting offer %s: %w", o.ID, err)
	}

	ts, err := s.rdb.HGet(ctx, key, "timestamp").Result()
	if err != nil {
		return fmt.Errorf("reading offer %s timestamp: %w", o.ID, err)
	}
	seen, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return fmt.Errorf("parsing offer %s timestamp: %w", o.ID, err)
	}
	o.SeenAt = seen
	return nil
}

// RemoveOffer deletes the offer with id, if present.
func (s *RedisStore) RemoveOffer(ctx context.Context, id string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, s.idsKey(), id)
		pipe.Del(ctx, s.offerKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing offer %s: %w", id, err)
	}
	return nil
}

// GetOffer retrieves one offer by id.
func (s *RedisStore) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	fields, err := s.rdb.HGetAll(ctx, s.offerKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting offer %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return offerFromHash(id, fields)
}

// ListOffers returns a page of offers, newest first, and the total count.
// Ordering happens client side; the tracked set is small.
func (s *RedisStore) ListOffers(ctx context.Context, limit, offset int) ([]domain.Offer, int, error) {
	ids, err := s.rdb.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("reading offer ids: %w", err)
	}

	cmds, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.HGetAll(ctx, s.offerKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("reading offers: %w", err)
	}

	offers := make([]domain.Offer, 0, len(ids))
	for i, cmd := range cmds {
		fields, err := cmd.(*redis.MapStringStringCmd).Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		o, err := offerFromHash(ids[i], fields)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, *o)
	}

	slices.SortFunc(offers, func(a, b domain.Offer) int {
		if c := b.SeenAt.Compare(a.SeenAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(offers)
	start := min(max(offset, 0), total)
	end := min(start+normalizeLimit(limit), total)
	return offers[start:end], total, nil
}

// RecordRun prepends r to the capped run history.
func (s *RedisStore) RecordRun(ctx context.Context, r *domain.Run) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding run %s: %w", r.ID, err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.runsKey(), data)
		pipe.LTrim(ctx, s.runsKey(), 0, maxStoredRuns-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RedisStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	raw, err := s.rdb.LRange(ctx, s.runsKey(), 0, int64(normalizeLimit(limit))-1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("reading runs: %w", err)
	}

	runs := make([]domain.Run, 0, len(raw))
	for _, item := range raw {
		var r domain.Run
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decoding run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func offerFromHash(id string, fields map[string]string) (*domain.Offer, error) {
	o := &domain.Offer{
		ID:        id,
		Title:     fields["title"],
		Permalink: fields["permalink"],
	}

	if p := fields["price"]; p != "" {
		price, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing offer %s price: %w", id, err)
		}
		o.Price = price
	}

	if ts := fields["timestamp"]; ts != "" {
		seen, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing offer %s timestamp: %w", id, err)
		}
		o.SeenAt = seen
	}

	return o, nil
}

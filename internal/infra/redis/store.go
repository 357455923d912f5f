package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/sunnet-n/quiz-game/internal/app"
)

const (
	defaultScanCount = 100
	mgetBatch        = 100
)

// Store is a Redis implementation of app.Store. Records are plain string keys
// without expiry.
// Notes:
//   - Concurrent Gets of the same key share one round-trip; every write forgets
//     the in-flight read so a Get issued after a write never sees older data.
//   - GetByPrefix uses SCAN, so against a cluster it only covers the node the
//     client routes the command to.
type Store struct {
	client    redis.UniversalClient
	scanCount int64
	sf        singleflight.Group
}

func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client:    client,
		scanCount: defaultScanCount,
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	// The flight is shared, so one caller going away must not fail the others.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		b, err := s.client.Get(flightCtx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, app.ErrKeyNotFound
		}
		return b, err
	})
	if err != nil {
		return nil, err
	}
	// The slice is shared by every caller of the flight.
	return clone(v.([]byte)), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	s.sf.Forget(key)
	return nil
}

// SetMany writes entries inside MULTI/EXEC.
func (s *Store) SetMany(ctx context.Context, entries ...app.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, e.Key, e.Value, 0)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, e := range entries {
		s.sf.Forget(e.Key)
	}
	return nil
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	seen := make(map[string]struct{})
	var keys []string

	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", s.scanCount).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		// SCAN may return a key more than once.
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", prefix, err)
	}

	values := make([][]byte, 0, len(keys))
	for start := 0; start < len(keys); start += mgetBatch {
		end := min(start+mgetBatch, len(keys))
		res, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, fmt.Errorf("mget: %w", err)
		}
		for _, v := range res {
			str, ok := v.(string)
			if !ok {
				// deleted between SCAN and MGET
				continue
			}
			values = append(values, []byte(str))
		}
	}
	return values, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrKeyNotFound is returned by Store.Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Entry is a single key/value pair written by Store.SetMany.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the key-value backing store shared by every request.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all entries atomically: readers observe either none or all of them.
	SetMany(ctx context.Context, entries ...Entry) error
	// GetByPrefix returns the values of all keys starting with prefix, in no particular order.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}

func roomKey(code string) string {
	return "room:" + code
}

func playerPrefix(code string) string {
	return roomKey(code) + ":player:"
}

func playerKey(code, playerID string) string {
	return playerPrefix(code) + playerID
}

func answerPrefix(code string, questionIndex int) string {
	return roomKey(code) + ":answer:" + strconv.Itoa(questionIndex) + ":"
}

func answerKey(code string, questionIndex int, playerID string) string {
	return answerPrefix(code, questionIndex) + playerID
}

func entry(key string, v any) (Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal %s: %w", key, err)
	}
	return Entry{Key: key, Value: data}, nil
}

// getJSON loads key into dest. The missing-key case is reported as notFound.
func getJSON(ctx context.Context, s Store, key string, dest any, notFound error) error {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, s Store, key string, v any) error {
	e, err := entry(key, v)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, e.Key, e.Value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func scanJSON[T any](ctx context.Context, s Store, prefix string) ([]T, error) {
	values, err := s.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", prefix, err)
	}
	out := make([]T, 0, len(values))
	for _, data := range values {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("unmarshal %s*: %w", prefix, err)
		}
		out = append(out, v)
	}
	return out, nil
}

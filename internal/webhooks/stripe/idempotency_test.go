package stripewebhook

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubIdempotencyStore struct {
	keys   map[string]string
	setErr error
}

func newStubStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: map[string]string{}}
}

func (s *stubIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	return s.keys[key], nil
}

func (s *stubIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if _, exists := s.keys[key]; exists {
		return false, nil
	}
	s.keys[key] = "1"
	return true, nil
}

func (s *stubIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "bs:idempotency:" + scope + ":" + id
}

func (s *stubIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.keys, key)
	}
	return nil
}

func TestCheckAndMarkDetectsRedelivery(t *testing.T) {
	guard, err := NewIdempotencyGuard(newStubStore(), time.Hour, "stripe")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}

	seen, err := guard.CheckAndMark(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if seen {
		t.Fatal("first delivery must not be marked seen")
	}

	seen, err = guard.CheckAndMark(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !seen {
		t.Fatal("redelivery must be marked seen")
	}
}

func TestDeleteAllowsRetry(t *testing.T) {
	guard, err := NewIdempotencyGuard(newStubStore(), time.Hour, "stripe")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}

	if _, err := guard.CheckAndMark(context.Background(), "evt_2"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := guard.Delete(context.Background(), "evt_2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	seen, err := guard.CheckAndMark(context.Background(), "evt_2")
	if err != nil {
		t.Fatalf("re-check: %v", err)
	}
	if seen {
		t.Fatal("event must be retryable after delete")
	}
}

func TestCheckAndMarkPropagatesStoreErrors(t *testing.T) {
	store := newStubStore()
	store.setErr = errors.New("redis down")
	guard, err := NewIdempotencyGuard(store, time.Hour, "stripe")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}

	if _, err := guard.CheckAndMark(context.Background(), "evt_3"); err == nil {
		t.Fatal("expected store error")
	}
}

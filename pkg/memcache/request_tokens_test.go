package mem

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRequestTokensLastRequestWins(t *testing.T) {
	ctx := context.Background()
	store := NewRequestTokens(time.Minute)

	first, _ := store.Issue(ctx, "s1")
	second, _ := store.Issue(ctx, "s1")
	if second <= first {
		t.Fatalf("second token %d should be greater than first %d", second, first)
	}

	latest, _ := store.Latest(ctx, "s1")
	if latest != second {
		t.Errorf("Latest() = %d, want %d", latest, second)
	}

	other, _ := store.Issue(ctx, "s2")
	if other != 1 {
		t.Errorf("independent session token = %d, want 1", other)
	}
}

func TestRequestTokensExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store := NewRequestTokens(time.Minute)
	store.now = func() time.Time { return now }

	if _, err := store.Issue(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)

	latest, _ := store.Latest(ctx, "s1")
	if latest != 0 {
		t.Errorf("Latest() after expiry = %d, want 0", latest)
	}

	// Issuing after expiry sweeps the stale entry and restarts the sequence.
	token, _ := store.Issue(ctx, "s1")
	if token != 1 {
		t.Errorf("token after expiry = %d, want 1", token)
	}
}

func TestRedisRequestTokens(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRequestTokens(client, time.Minute)

	latest, err := store.Latest(ctx, "s1")
	if err != nil || latest != 0 {
		t.Fatalf("Latest() on empty = %d, %v; want 0, nil", latest, err)
	}

	first, err := store.Issue(ctx, "s1")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	second, _ := store.Issue(ctx, "s1")
	if first != 1 || second != 2 {
		t.Errorf("tokens = %d, %d; want 1, 2", first, second)
	}

	latest, _ = store.Latest(ctx, "s1")
	if latest != 2 {
		t.Errorf("Latest() = %d, want 2", latest)
	}

	if ttl := srv.TTL(requestTokenKey("s1")); ttl != time.Minute {
		t.Errorf("key TTL = %v, want 1m", ttl)
	}
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T, ttl time.Duration, sliding bool) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, "gs", ttl, sliding), mr
}

func TestRedisStoreCommitAndLoad(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour, false)
	ctx := context.Background()

	ref := Ref{SessionID: "s1", TenantID: "t1"}
	rec := &Record{ID: "user-1", TenantID: "t1", Identifier: "alice", Role: "member", AccountVersion: 3}

	if err := s.Commit(ctx, ref, rec); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	got, err := s.Load(ctx, ref)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *rec {
		t.Fatalf("expected %+v, got %+v", rec, got)
	}

	exists, err := s.Exists(ctx, ref)
	if err != nil || !exists {
		t.Fatalf("expected committed ref to exist, err=%v", err)
	}

	ids, err := s.ActiveSessionIDs(ctx, "t1", "user-1")
	if err != nil {
		t.Fatalf("index read failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "s1" {
		t.Fatalf("expected index [s1], got %v", ids)
	}
}

func TestRedisStoreNilCommitClears(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour, false)
	ctx := context.Background()

	ref := Ref{SessionID: "s1", TenantID: "t1"}
	if err := s.Commit(ctx, ref, &Record{ID: "user-1", TenantID: "t1"}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := s.Commit(ctx, ref, nil); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := s.Load(ctx, ref); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after clear, got %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected empty redis, got keys %v", keys)
	}
}

func TestRedisStoreNilCommitIsIdempotent(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour, false)
	ctx := context.Background()

	ref := Ref{SessionID: "missing", TenantID: "t1"}
	if err := s.Commit(ctx, ref, nil); err != nil {
		t.Fatalf("expected clear of missing ref to succeed, got %v", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute, false)
	ctx := context.Background()

	ref := Ref{SessionID: "s1", TenantID: "t1"}
	if err := s.Commit(ctx, ref, &Record{ID: "user-1", TenantID: "t1"}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := s.Load(ctx, ref); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after TTL expiry, got %v", err)
	}
}

func TestRedisStoreSlidingRenewsTTL(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute, true)
	ctx := context.Background()

	ref := Ref{SessionID: "s1", TenantID: "t1"}
	if err := s.Commit(ctx, ref, &Record{ID: "user-1", TenantID: "t1"}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	mr.FastForward(30 * time.Second)
	if _, err := s.Load(ctx, ref); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// The load renewed the TTL, so another 45s must not expire the key.
	mr.FastForward(45 * time.Second)
	if _, err := s.Load(ctx, ref); err != nil {
		t.Fatalf("expected renewed reference to survive, got %v", err)
	}
}

func TestRedisStoreDefaultTenantNamespace(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour, false)
	ctx := context.Background()

	if err := s.Commit(ctx, Ref{SessionID: "s1"}, &Record{ID: "user-1"}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	got, err := s.Load(ctx, Ref{SessionID: "s1"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != "user-1" {
		t.Fatalf("expected user-1, got %q", got.ID)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisStore(rdb, "gs", time.Hour, false)
	mr.Close()

	err = s.Commit(context.Background(), Ref{SessionID: "s1"}, &Record{ID: "user-1"})
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}

func TestRedisStorePing(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour, false)
	if _, err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

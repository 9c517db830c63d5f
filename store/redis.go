package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every Redis transport failure surfaced by
// [RedisStore].
var ErrRedisUnavailable = errors.New("redis unavailable")

const minSlidingTTL = time.Second

// deleteRefScript removes the session key and drops the session ID from the
// record's index set in one round trip. The record ID is read from the blob
// by the caller beforehand; an already-missing key is a no-op.
const deleteRefScript = `
local existed = redis.call("EXISTS", KEYS[1])
redis.call("SREM", KEYS[2], ARGV[1])
if existed == 1 then
  redis.call("DEL", KEYS[1])
end
return existed
`

var deleteRefLua = redis.NewScript(deleteRefScript)

// RedisStore commits record references to Redis under
// "<prefix>:<tenant>:<sessionID>" with a TTL, and indexes live session IDs
// per record so callers can enumerate a subject's sessions.
type RedisStore struct {
	redis   redis.UniversalClient
	prefix  string
	ttl     time.Duration
	sliding bool
}

// NewRedisStore creates a [RedisStore]. prefix sets the key namespace, ttl
// bounds the committed reference's lifetime, and sliding renews the TTL on
// every Load.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration, sliding bool) *RedisStore {
	return &RedisStore{
		redis:   client,
		prefix:  prefix,
		ttl:     ttl,
		sliding: sliding,
	}
}

func (s *RedisStore) key(tenantID, sessionID string) string {
	return s.prefix + ":" + normalizeTenantID(tenantID) + ":" + sessionID
}

func (s *RedisStore) indexKey(tenantID, recordID string) string {
	return s.prefix + ":idx:" + normalizeTenantID(tenantID) + ":" + recordID
}

func normalizeTenantID(tenantID string) string {
	if tenantID == "" {
		return "0"
	}
	return tenantID
}

// Commit persists the record reference for ref, or clears it when rec is nil.
func (s *RedisStore) Commit(ctx context.Context, ref Ref, rec *Record) error {
	if rec == nil {
		return s.clear(ctx, ref)
	}

	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}

	refKey := s.key(ref.TenantID, ref.SessionID)
	idxKey := s.indexKey(ref.TenantID, rec.ID)

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, refKey, data, s.ttl)
		pipe.SAdd(ctx, idxKey, ref.SessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

func (s *RedisStore) clear(ctx context.Context, ref Ref) error {
	refKey := s.key(ref.TenantID, ref.SessionID)

	data, err := s.redis.Get(ctx, refKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		// A corrupt blob still has to be cleared; there is no index entry
		// we can trust, so delete the key directly.
		if delErr := s.redis.Del(ctx, refKey).Err(); delErr != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, delErr)
		}
		return nil
	}

	idxKey := s.indexKey(ref.TenantID, rec.ID)
	if _, err := deleteRefLua.Run(ctx, s.redis, []string{refKey, idxKey}, ref.SessionID).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Load fetches the committed record for ref. Returns redis.Nil when nothing
// is committed. With sliding expiration enabled, a successful Load renews
// the TTL.
func (s *RedisStore) Load(ctx context.Context, ref Ref) (*Record, error) {
	refKey := s.key(ref.TenantID, ref.SessionID)

	data, err := s.redis.Get(ctx, refKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		return nil, err
	}

	if s.sliding && s.ttl > 0 {
		nextTTL := s.ttl
		if nextTTL < minSlidingTTL {
			nextTTL = minSlidingTTL
		}
		if err := s.redis.Expire(ctx, refKey, nextTTL).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return rec, nil
}

// Exists reports whether a record reference is committed for ref.
func (s *RedisStore) Exists(ctx context.Context, ref Ref) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(ref.TenantID, ref.SessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n == 1, nil
}

// ActiveSessionIDs returns the session IDs currently committed for a record
// within a tenant.
func (s *RedisStore) ActiveSessionIDs(ctx context.Context, tenantID, recordID string) ([]string, error) {
	ids, err := s.redis.SMembers(ctx, s.indexKey(tenantID, recordID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return ids, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

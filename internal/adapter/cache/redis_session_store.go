package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the server-side record referenced by the sid cookie. Role
// and IsAdmin are a snapshot taken at login; admin API routes re-derive
// the role from the users collection, so the snapshot only goes stale
// for page rendering until the next login.
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"isAdmin"`
}

// RedisSessionStore keeps sessions under sess:<id> with a TTL that is
// refreshed on every Get, giving an inactivity window rather than a
// fixed lifetime.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return "sess:" + id }

func (s *RedisSessionStore) Create(ctx context.Context, sess Session) (string, error) {
	id := uuid.NewString()
	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKey(id), b, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (Session, bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return Session{}, false, err
	}

	// Sliding expiry.
	_ = s.rdb.Expire(ctx, sessionKey(id), s.ttl).Err()
	return sess, true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

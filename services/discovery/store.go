package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"salesnav/models"
)

var (
	// ErrSessionNotFound is returned for unknown or expired sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionBusy is returned when concurrent writers keep winning the race for a session.
	ErrSessionBusy = errors.New("session is being modified, try again")
)

const (
	sessionPrefix = "discovery:session:"
	// maxUpdateAttempts bounds the optimistic-lock retries of RedisStore.Update.
	maxUpdateAttempts = 10
)

// UpdateFunc changes a session in place. Returning an error aborts the update
// and leaves the stored session untouched. It may run more than once.
type UpdateFunc func(*models.DiscoverySession) error

// SessionStore persists wizard sessions between requests. Every
// read-modify-write goes through Update so concurrent requests on the same
// session never overwrite each other.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.DiscoverySession, error)
	Save(ctx context.Context, s *models.DiscoverySession) error
	Update(ctx context.Context, id string, fn UpdateFunc) (*models.DiscoverySession, error)
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps sessions as JSON with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.DiscoverySession, error) {
	return s.get(ctx, s.client, id)
}

func (s *RedisStore) Save(ctx context.Context, sess *models.DiscoverySession) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sess.ID, b, s.ttl).Err()
}

// Update watches the session key, applies fn and writes the result in a
// MULTI/EXEC block. A concurrent write to the key restarts the cycle.
func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*models.DiscoverySession, error) {
	key := sessionPrefix + id
	var out *models.DiscoverySession
	txf := func(tx *redis.Tx) error {
		sess, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		b, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err == nil {
			out = sess
		}
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionBusy, id)
}

func (s *RedisStore) get(ctx context.Context, c getter, id string) (*models.DiscoverySession, error) {
	data, err := c.Get(ctx, sessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(data)
}

func decodeSession(data []byte) (*models.DiscoverySession, error) {
	var sess models.DiscoverySession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.Answers == nil {
		sess.Answers = models.AnswerSet{}
	}
	return &sess, nil
}

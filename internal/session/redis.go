// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"workgate/internal/auth"
)

const (
	sessKeyPrefix  = "sess:"
	identKeyPrefix = "sess:ident:"
)

// redisStore implements Store on Redis. Sessions live under sess:<id> with a
// sliding idle TTL; sess:ident:<tenant>:<user> points at the identity's
// current session id and is what makes a superseding login invalidate the
// previous device's session.
type redisStore struct {
	rdb         *redis.Client
	log         *zap.SugaredLogger
	idleTTL     time.Duration
	absoluteTTL time.Duration
	now         func() time.Time
}

func NewRedisStore(rdb *redis.Client, idleTTL, absoluteTTL time.Duration, log *zap.SugaredLogger) Store {
	return &redisStore{rdb: rdb, log: log, idleTTL: idleTTL, absoluteTTL: absoluteTTL, now: time.Now}
}

func (s *redisStore) Create(ctx context.Context, p *auth.Principal) (*Session, error) {
	identKey := identKeyPrefix + p.IdentityKey()

	// Invalidate the previous session for this identity before installing
	// the new one: a later request holding the old id must not succeed once
	// the new session exists.
	if old, err := s.rdb.Get(ctx, identKey).Result(); err == nil && old != "" {
		if err := s.rdb.Del(ctx, sessKeyPrefix+old).Err(); err != nil {
			return nil, fmt.Errorf("invalidate prior session: %w", err)
		}
		s.log.Infow("prior session invalidated by new login", "tenant", p.TenantCode, "user", p.UserID)
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("lookup prior session: %w", err)
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Principal: p,
		CreatedAt: s.now().UTC(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessKeyPrefix+sess.ID, data, s.idleTTL)
	pipe.Set(ctx, identKey, sess.ID, s.absoluteTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	// Absolute lifetime is enforced on read; the idle TTL alone would let a
	// busy client keep a session alive forever.
	age := s.now().UTC().Sub(sess.CreatedAt)
	if age > s.absoluteTTL {
		_ = s.Delete(ctx, id)
		return nil, ErrNotFound
	}
	refresh := s.idleTTL
	if remaining := s.absoluteTTL - age; remaining < refresh {
		refresh = remaining
	}
	if err := s.rdb.Expire(ctx, sessKeyPrefix+id, refresh).Err(); err != nil {
		s.log.Warnw("session idle refresh failed", "err", err)
	}
	return &sess, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	data, err := s.rdb.Get(ctx, sessKeyPrefix+id).Bytes()
	if err == nil {
		var sess Session
		if jerr := json.Unmarshal(data, &sess); jerr == nil && sess.Principal != nil {
			identKey := identKeyPrefix + sess.Principal.IdentityKey()
			// Only clear the identity slot when it still points at this
			// session; a superseding login may already own it.
			if cur, gerr := s.rdb.Get(ctx, identKey).Result(); gerr == nil && cur == id {
				_ = s.rdb.Del(ctx, identKey).Err()
			}
		}
	} else if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("load session for delete: %w", err)
	}
	if err := s.rdb.Del(ctx, sessKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *redisStore) EnsureCSRF(ctx context.Context, id string) (string, error) {
	data, err := s.rdb.Get(ctx, sessKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}
	if sess.CSRFToken != "" {
		return sess.CSRFToken, nil
	}
	sess.CSRFToken = uuid.NewString()
	updated, err := json.Marshal(&sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessKeyPrefix+id, updated, redis.KeepTTL).Err(); err != nil {
		return "", fmt.Errorf("bind csrf token: %w", err)
	}
	return sess.CSRFToken, nil
}

package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/shiftkerja/shiftclient/core/session"
)

// SessionStorage keeps the session as two string keys, <prefix>token and
// <prefix>role. MGET and MSET make the pair atomic. It implements session.Storage.
type SessionStorage struct {
	client redis.Cmdable
	prefix string
}

// NewSessionStorage creates a storage using keys under prefix.
func NewSessionStorage(client redis.Cmdable, prefix string) *SessionStorage {
	return &SessionStorage{client: client, prefix: prefix}
}

func (s *SessionStorage) keys() (string, string) {
	return s.prefix + session.KeyToken, s.prefix + session.KeyRole
}

func (s *SessionStorage) Load(ctx context.Context) (session.Session, error) {
	tk, rk := s.keys()
	vals, err := s.client.MGet(ctx, tk, rk).Result()
	if err != nil {
		return session.Session{}, errors.Join(session.ErrLoadSession, err)
	}

	token, _ := vals[0].(string)
	role, _ := vals[1].(string)
	return session.FromEntries(token, role), nil
}

func (s *SessionStorage) Save(ctx context.Context, sess session.Session) error {
	if (sess.Token == "") != (sess.Role == "") {
		return session.ErrIncompleteSession
	}
	tk, rk := s.keys()
	if err := s.client.MSet(ctx, tk, sess.Token, rk, string(sess.Role)).Err(); err != nil {
		return errors.Join(session.ErrSaveSession, err)
	}
	return nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	tk, rk := s.keys()
	if err := s.client.Del(ctx, tk, rk).Err(); err != nil {
		return errors.Join(session.ErrClearSession, err)
	}
	return nil
}

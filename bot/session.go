package bot

import (
	"context"

	"github.com/tashfin/contractbot/contract"
)

// Session is one user's in-progress form: the active step of the state
// graph plus the field accumulator. A fresh session starts at the contract
// type choice with an empty form.
type Session struct {
	Step Step          `json:"step"`
	Form contract.Form `json:"form"`
}

func newSession() *Session {
	return &Session{Step: StepChooseContract}
}

type sessionKeyContext struct{}

const defaultSessionKey = "default"

// WithSessionKey routes all session and transcript storage for this
// context to the given key (the transport's chat identifier).
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, key)
}

// SessionKeyFromContext returns the routing key set by WithSessionKey.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKeyContext{}).(string)
	return key, ok
}

func sessionKeyOrDefault(ctx context.Context) (string, bool) {
	if key, ok := SessionKeyFromContext(ctx); ok && key != "" {
		return key, true
	}
	return defaultSessionKey, true
}

// SessionStore persists one Session per routing key.
type SessionStore struct {
	store Store[*Session]
}

func NewSessionStore(core Cache[*Session]) *SessionStore {
	return &SessionStore{store: NewStore(core, "bot:session", sessionKeyOrDefault)}
}

func NewMemorySessionStore() *SessionStore {
	return NewSessionStore(NewMemoryCache[*Session]())
}

// Load returns the stored session, or a fresh one when none exists.
func (s *SessionStore) Load(ctx context.Context) (*Session, error) {
	sess, ok, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || sess == nil {
		return newSession(), nil
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	return s.store.Set(ctx, sess)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.store.Del(ctx)
}

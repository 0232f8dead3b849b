package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/redis"
)

// Persister saves and loads cart snapshots keyed by session id.
type Persister interface {
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, sessionID string, state State) error
	Delete(ctx context.Context, sessionID string) error
}

// Store owns session-scoped cart state. Every mutation funnels through
// Dispatch, which serializes load-reduce-save so the running total can never
// interleave with a concurrent mutation for the same store.
type Store struct {
	mu        sync.Mutex
	persister Persister
}

// NewStore wires the cart store to its snapshot persister.
func NewStore(persister Persister) (*Store, error) {
	if persister == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart persister required")
	}
	return &Store{persister: persister}, nil
}

// Get returns the current cart for the session, empty if none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (State, error) {
	if sessionID == "" {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, found, err := s.persister.Load(ctx, sessionID)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !found {
		return Empty(), nil
	}
	return state, nil
}

// Dispatch applies one action to the session's cart and returns the new state.
func (s *Store) Dispatch(ctx context.Context, sessionID string, action Action) (State, error) {
	if sessionID == "" {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if action == nil {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "action required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, found, err := s.persister.Load(ctx, sessionID)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !found {
		state = Empty()
	}

	next := Reduce(state, action)

	if _, cleared := action.(Clear); cleared {
		if err := s.persister.Delete(ctx, sessionID); err != nil {
			return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return next, nil
	}

	if err := s.persister.Save(ctx, sessionID, next); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return next, nil
}

// RedisPersister stores cart snapshots as JSON under the session cart key.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersister builds the production persister. TTL bounds how long an
// abandoned cart survives.
func NewRedisPersister(client *redis.Client, ttl time.Duration) (*RedisPersister, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "redis client required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisPersister{client: client, ttl: ttl}, nil
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) (State, bool, error) {
	raw, err := p.client.Get(ctx, p.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return State{}, false, nil
		}
		return State{}, false, err
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, false, err
	}
	return state, true, nil
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.client.CartKey(sessionID), string(raw), p.ttl)
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return p.client.Del(ctx, p.client.CartKey(sessionID))
}

// MemoryPersister keeps snapshots in a map. Used by tests and the sqlite dev
// profile.
type MemoryPersister struct {
	mu    sync.RWMutex
	carts map[string]State
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{carts: map[string]State{}}
}

func (p *MemoryPersister) Load(_ context.Context, sessionID string) (State, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	state, ok := p.carts[sessionID]
	return state, ok, nil
}

func (p *MemoryPersister) Save(_ context.Context, sessionID string, state State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.carts[sessionID] = state
	return nil
}

func (p *MemoryPersister) Delete(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.carts, sessionID)
	return nil
}

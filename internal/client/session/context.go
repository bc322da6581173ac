// Package session holds the process-wide session state the rest of the
// client reads: who is signed in, with which token, and whether the stored
// session has been loaded yet.
//
// A Context moves booting -> authenticated | unauthenticated once Bootstrap
// completes, and between authenticated and unauthenticated on SignIn, SignUp
// and SignOut afterwards.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/services"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

type State string

const (
	StateBooting         State = "booting"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	State           State
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// Context is the single session holder of the process. Build it with New,
// call Bootstrap once at startup and Close on shutdown.
type Context struct {
	auth services.AuthService
	log  logging.Logger

	bootOnce sync.Once
	bootErr  error

	loadOnce sync.Once
	loaded   chan struct{}

	mu      sync.RWMutex
	snap    Snapshot
	gen     uint64
	closed  bool
	subs    map[int]chan Snapshot
	nextSub int
}

func New(auth services.AuthService, log logging.Logger) *Context {
	if log == nil {
		log = logging.Nop()
	}
	return &Context{
		auth:   auth,
		log:    log.With("component", "session"),
		loaded: make(chan struct{}),
		snap:   Snapshot{State: StateBooting, IsLoading: true},
		subs:   make(map[int]chan Snapshot),
	}
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.State
}

func (c *Context) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Bootstrap loads the persisted session. Only the first call does any work;
// later calls return the first call's result. A read failure still ends the
// booting state, as unauthenticated.
func (c *Context) Bootstrap(ctx context.Context) error {
	c.bootOnce.Do(func() {
		c.bootErr = c.load(ctx, "bootstrap")
	})
	return c.bootErr
}

// Reload re-reads the persisted session. Reloading an unchanged store
// yields the same snapshot.
func (c *Context) Reload(ctx context.Context) error {
	return c.load(ctx, "reload")
}

func (c *Context) load(ctx context.Context, op string) error {
	gen := c.generation()

	s, err := c.auth.GetSession(ctx)
	if err != nil {
		c.log.Error(ctx, op+" failed", "error", err)
		s = nil
	}

	c.mu.Lock()
	if c.closed {
		c.loadOnce.Do(func() { close(c.loaded) })
		c.mu.Unlock()
		c.log.Debug(ctx, op+" result discarded, context closed")
		return err
	}
	switch {
	case c.gen != gen:
		// a sign-in or sign-out landed while reading; it is newer
		c.log.Debug(ctx, op+" result discarded, state changed meanwhile")
	default:
		c.setLocked(s)
	}
	c.finishLoadingLocked()
	snap := c.snap
	c.mu.Unlock()

	c.publish(snap)
	return err
}

// Wait blocks until the first load completed or ctx is done.
func (c *Context) Wait(ctx context.Context) error {
	select {
	case <-c.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Context) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.apply(s)
	return s, nil
}

func (c *Context) SignUp(ctx context.Context, name, email, password string) (*models.Session, error) {
	s, err := c.auth.SignUp(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	c.apply(s)
	return s, nil
}

func (c *Context) SignOut(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		return err
	}
	c.apply(nil)
	return nil
}

func (c *Context) RequestPasswordReset(ctx context.Context, email string) error {
	return c.auth.RequestPasswordReset(ctx, email)
}

// apply installs s as the current session unless the context is closed.
func (c *Context) apply(s *models.Session) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.setLocked(s)
	c.finishLoadingLocked()
	snap := c.snap
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Context) setLocked(s *models.Session) {
	if s.Valid() {
		u := *s.User
		c.snap = Snapshot{
			State:           StateAuthenticated,
			User:            &u,
			Token:           s.Token,
			IsAuthenticated: true,
		}
		return
	}
	c.snap = Snapshot{State: StateUnauthenticated}
}

func (c *Context) finishLoadingLocked() {
	c.snap.IsLoading = false
	c.loadOnce.Do(func() { close(c.loaded) })
}

func (c *Context) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Subscribe returns a channel receiving a snapshot after every change.
// Delivery never blocks the session: a subscriber whose buffer is full
// misses that snapshot. cancel unsubscribes and closes the channel.
func (c *Context) Subscribe(buffer int) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, buffer)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

func (c *Context) publish(snap Snapshot) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Close detaches the context. Loads and sign-in results that complete
// afterwards no longer change its state, and subscriber channels are closed.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

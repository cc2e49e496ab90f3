package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hmchef/hmchef/internal/client"
	"github.com/hmchef/hmchef/internal/kvstore"
	"github.com/hmchef/hmchef/internal/model"
)

// ChangeReason says why the identity changed. Logout is distinct because it
// drops the collection instead of reloading it.
type ChangeReason int

const (
	ReasonRestore ChangeReason = iota
	ReasonLogin
	ReasonLogout
)

// IdentityEvent is the payload delivered to IdentityChanged subscribers.
type IdentityEvent struct {
	Identity *model.Identity
	Reason   ChangeReason
}

// ChangedFunc handles an identity transition. It runs synchronously; the
// transition is complete only when every subscriber has returned.
type ChangedFunc func(ctx context.Context, ev IdentityEvent) error

// IdentityProvider holds the current authenticated identity, persists it
// across restarts and announces every transition to its subscribers.
type IdentityProvider struct {
	local kvstore.Store
	auth  AuthAPI

	mu        sync.Mutex
	current   *model.Identity
	onChanged []ChangedFunc
}

func NewIdentityProvider(local kvstore.Store, auth AuthAPI) *IdentityProvider {
	return &IdentityProvider{local: local, auth: auth}
}

// Subscribe registers fn for IdentityChanged events. Subscriptions must be
// complete before the first transition.
func (p *IdentityProvider) Subscribe(fn ChangedFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChanged = append(p.onChanged, fn)
}

// Current returns the authenticated identity, or nil in anonymous mode.
func (p *IdentityProvider) Current() *model.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	id := *p.current
	return &id
}

// Authenticated reports whether an identity is present.
func (p *IdentityProvider) Authenticated() bool {
	return p.Current() != nil
}

// Restore loads a persisted identity, if any, and fires the initial
// IdentityChanged event so the collection gets its first load. A stored
// token is not re-validated here; an expired one surfaces later as a
// SyncLoadError on the reload.
func (p *IdentityProvider) Restore(ctx context.Context) error {
	var restoreErr error

	raw, ok, err := p.local.Get(ctx, identityKey)
	if err != nil {
		restoreErr = fmt.Errorf("failed to load stored identity: %w", err)
	} else if ok {
		var id model.Identity
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			restoreErr = fmt.Errorf("failed to decode stored identity: %w", err)
		} else {
			p.setCurrent(&id)
		}
	}

	return errors.Join(restoreErr, p.notify(ctx, IdentityEvent{Identity: p.Current(), Reason: ReasonRestore}))
}

// Login authenticates against the login endpoint. On success the identity is
// set and persisted before subscribers run; a rejection leaves the identity
// unchanged and returns an AuthError.
func (p *IdentityProvider) Login(ctx context.Context, username, password string) error {
	return p.authenticate(ctx, username, password, p.auth.Login)
}

// Register creates an account. Same contract as Login against the
// registration endpoint.
func (p *IdentityProvider) Register(ctx context.Context, username, password string) error {
	return p.authenticate(ctx, username, password, p.auth.Register)
}

func (p *IdentityProvider) authenticate(ctx context.Context, username, password string,
	call func(context.Context, string, string) (string, error)) error {

	token, err := call(ctx, username, password)
	if err != nil {
		var remote *client.RemoteError
		if errors.As(err, &remote) {
			return &AuthError{Detail: remote.Detail}
		}
		return &AuthError{Detail: err.Error()}
	}

	id := &model.Identity{Username: username, AccessToken: token}
	p.setCurrent(id)

	// The identity is authoritative in memory even if the persist fails;
	// the failure is reported, not rolled back.
	var persistErr error
	raw, err := json.Marshal(id)
	if err == nil {
		err = p.local.Set(ctx, identityKey, string(raw))
	}
	if err != nil {
		persistErr = &PersistError{Err: fmt.Errorf("failed to store identity: %w", err)}
	}

	return errors.Join(persistErr, p.notify(ctx, IdentityEvent{Identity: p.Current(), Reason: ReasonLogin}))
}

// Logout clears the identity and its persisted copy, then signals the
// transition so the recipe collection is dropped.
func (p *IdentityProvider) Logout(ctx context.Context) error {
	p.setCurrent(nil)

	var removeErr error
	if err := p.local.Remove(ctx, identityKey); err != nil {
		removeErr = &PersistError{Err: fmt.Errorf("failed to clear stored identity: %w", err)}
	}

	return errors.Join(removeErr, p.notify(ctx, IdentityEvent{Reason: ReasonLogout}))
}

func (p *IdentityProvider) setCurrent(id *model.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = id
}

func (p *IdentityProvider) notify(ctx context.Context, ev IdentityEvent) error {
	p.mu.Lock()
	subs := make([]ChangedFunc, len(p.onChanged))
	copy(subs, p.onChanged)
	p.mu.Unlock()

	var errs []error
	for _, fn := range subs {
		if err := fn(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

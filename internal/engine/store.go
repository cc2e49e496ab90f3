package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/hmchef/hmchef/internal/client"
	"github.com/hmchef/hmchef/internal/kvstore"
	"github.com/hmchef/hmchef/internal/model"
)

// RecipeStore owns the in-memory recipe collection for the active session.
// The in-memory slice is the single source of truth for rendering;
// persistence (local or remote) is a side effect of each write, never read
// back synchronously.
type RecipeStore struct {
	session  *IdentityProvider
	local    kvstore.Store
	remote   RecipeAPI
	uploader *MediaUploader

	// ops serializes Add/Delete/Clear against reloads so a write never
	// lands in a collection that is about to be replaced.
	ops sync.Mutex

	mu      sync.Mutex
	recipes []model.Recipe

	loaded     chan struct{}
	loadedOnce sync.Once
}

func NewRecipeStore(session *IdentityProvider, local kvstore.Store, remote RecipeAPI, uploader *MediaUploader) *RecipeStore {
	return &RecipeStore{
		session:  session,
		local:    local,
		remote:   remote,
		uploader: uploader,
		loaded:   make(chan struct{}),
	}
}

// List returns the current collection in insertion order.
func (s *RecipeStore) List() []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Exists reports whether a recipe with the given id is currently held.
func (s *RecipeStore) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return true
		}
	}
	return false
}

// AlreadyOwned reports whether the collection already holds the same dish.
// Used by presentation code to tell "already in my collection" apart from
// "importable from search".
func (s *RecipeStore) AlreadyOwned(candidate model.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recipes {
		if r.SameDish(candidate) {
			return true
		}
	}
	return false
}

// Add commits a candidate recipe. Anonymous: append and persist the whole
// collection locally. Authenticated: upload a device-local image first, then
// submit to the remote service; any failure aborts the add with the
// in-memory collection unchanged. The server-confirmed id wins when it
// differs from the submitted one.
func (s *RecipeStore) Add(ctx context.Context, candidate model.Recipe) error {
	if err := s.waitLoaded(ctx); err != nil {
		return err
	}
	s.ops.Lock()
	defer s.ops.Unlock()

	if candidate.ID == "" {
		candidate.ID = NewLocalID()
	}

	id := s.session.Current()
	if id == nil {
		s.append(candidate)
		if err := s.persistLocal(ctx); err != nil {
			return &PersistError{Err: err}
		}
		return nil
	}

	if candidate.ImageURI != "" && !model.IsRemoteRef(candidate.ImageURI) {
		remoteURL, err := s.uploader.Upload(ctx, id, candidate.ImageURI)
		if err != nil {
			return err
		}
		candidate.ImageURI = remoteURL
	}

	confirmedID, err := s.remote.CreateRecipe(ctx, id, candidate)
	if err != nil {
		return asPersistError(err)
	}
	if confirmedID != "" {
		candidate.ID = confirmedID
	}
	s.append(candidate)
	return nil
}

// Delete removes a recipe. Authenticated deletes are confirmed by the
// service before the in-memory collection changes; on failure the
// collection is untouched.
func (s *RecipeStore) Delete(ctx context.Context, recipeID string) error {
	if err := s.waitLoaded(ctx); err != nil {
		return err
	}
	s.ops.Lock()
	defer s.ops.Unlock()

	id := s.session.Current()
	if id != nil {
		if err := s.remote.DeleteRecipe(ctx, id, recipeID); err != nil {
			return asPersistError(err)
		}
		s.remove(recipeID)
		return nil
	}

	s.remove(recipeID)
	if err := s.persistLocal(ctx); err != nil {
		return &PersistError{Err: err}
	}
	return nil
}

// Clear empties the in-memory collection and, in anonymous mode, the local
// persisted copy as well. Logout runs through here.
func (s *RecipeStore) Clear(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	s.recipes = nil
	s.mu.Unlock()
	s.markLoaded()

	if s.session.Current() == nil {
		if err := s.local.Remove(ctx, recipesKey); err != nil {
			return &PersistError{Err: fmt.Errorf("failed to clear local recipes: %w", err)}
		}
	}
	return nil
}

// Replace swaps in a freshly loaded collection wholesale. Only the sync
// bridge calls this; old and new state are never merged.
func (s *RecipeStore) Replace(recipes []model.Recipe) {
	s.mu.Lock()
	s.recipes = make([]model.Recipe, len(recipes))
	copy(s.recipes, recipes)
	s.mu.Unlock()
	s.markLoaded()
}

// NewLocalID derives a collection-local id from the current time. Good
// enough for single-device, single-session creation; server-issued ids
// replace it on remote persistence.
func NewLocalID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// waitLoaded gates writes behind completion of the first collection load.
func (s *RecipeStore) waitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *RecipeStore) markLoaded() {
	s.loadedOnce.Do(func() { close(s.loaded) })
}

func (s *RecipeStore) lockWrites()   { s.ops.Lock() }
func (s *RecipeStore) unlockWrites() { s.ops.Unlock() }

func (s *RecipeStore) append(r model.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append(s.recipes, r)
}

func (s *RecipeStore) remove(recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.recipes[:0]
	for _, r := range s.recipes {
		if r.ID != recipeID {
			kept = append(kept, r)
		}
	}
	s.recipes = kept
}

// persistLocal serializes the whole collection to local storage. The
// in-memory value stays authoritative even when this fails.
func (s *RecipeStore) persistLocal(ctx context.Context) error {
	raw, err := json.Marshal(s.List())
	if err != nil {
		return err
	}
	return s.local.Set(ctx, recipesKey, string(raw))
}

func asPersistError(err error) error {
	var remote *client.RemoteError
	if errors.As(err, &remote) {
		return &PersistError{Detail: remote.Detail}
	}
	return &PersistError{Err: err}
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmchef/hmchef/internal/kvstore"
	"github.com/hmchef/hmchef/internal/model"
)

// SyncBridge reconciles the in-memory collection with the authoritative
// backing store on every identity transition: local storage when anonymous,
// the remote service when authenticated. The collection is replaced
// wholesale; old and new state are never merged.
type SyncBridge struct {
	store  *RecipeStore
	local  kvstore.Store
	remote RecipeAPI
}

func NewSyncBridge(store *RecipeStore, local kvstore.Store, remote RecipeAPI) *SyncBridge {
	return &SyncBridge{store: store, local: local, remote: remote}
}

// Bind subscribes the bridge to the provider's IdentityChanged events.
func (b *SyncBridge) Bind(p *IdentityProvider) {
	p.Subscribe(b.onIdentityChanged)
}

func (b *SyncBridge) onIdentityChanged(ctx context.Context, ev IdentityEvent) error {
	if ev.Reason == ReasonLogout {
		return b.store.Clear(ctx)
	}
	return b.Reload(ctx, ev.Identity)
}

// Reload loads the collection for the given identity and replaces the
// store's set. A failed remote fetch yields an empty collection rather than
// a stale local copy; the SyncLoadError is reported but the app stays
// usable.
func (b *SyncBridge) Reload(ctx context.Context, id *model.Identity) error {
	b.store.lockWrites()
	defer b.store.unlockWrites()

	if id == nil {
		recipes, err := b.loadLocal(ctx)
		if err != nil {
			b.store.Replace(nil)
			return &SyncLoadError{Err: err}
		}
		b.store.Replace(recipes)
		return nil
	}

	recipes, err := b.remote.ListRecipes(ctx, id)
	if err != nil {
		b.store.Replace(nil)
		return &SyncLoadError{Err: err}
	}
	b.store.Replace(recipes)
	return nil
}

func (b *SyncBridge) loadLocal(ctx context.Context) ([]model.Recipe, error) {
	raw, ok, err := b.local.Get(ctx, recipesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read local recipes: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var recipes []model.Recipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode local recipes: %w", err)
	}
	return recipes, nil
}

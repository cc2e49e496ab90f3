// Package engine is the recipe synchronization and identity-reconciliation
// core. It decides, for every read and write of the recipe collection,
// whether to target device-local storage or the remote service, merges data
// across that boundary, assigns stable identifiers and rolls back cleanly on
// partial failure.
package engine

import (
	"context"

	"github.com/hmchef/hmchef/internal/kvstore"
	"github.com/hmchef/hmchef/internal/model"
)

// Logical keys in local storage. current_user matches what the mobile app
// stored, so an existing device picks up its session after an upgrade.
const (
	identityKey = "current_user"
	recipesKey  = "recipes"
)

// AuthAPI is the remote auth service.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (string, error)
}

// RecipeAPI is the remote recipe service.
type RecipeAPI interface {
	ListRecipes(ctx context.Context, id *model.Identity) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, id *model.Identity, recipe model.Recipe) (string, error)
	DeleteRecipe(ctx context.Context, id *model.Identity, recipeID string) error
}

// UploadAPI is the remote upload service.
type UploadAPI interface {
	Upload(ctx context.Context, id *model.Identity, localRef string) (string, error)
}

// Engine bundles the wired core: identity provider, recipe store and sync
// bridge sharing one local store and one set of remote services.
type Engine struct {
	Session *IdentityProvider
	Store   *RecipeStore
	Bridge  *SyncBridge
}

// New wires the engine. The bridge is already subscribed to identity
// changes; callers should invoke Session.Restore before the first write.
func New(local kvstore.Store, auth AuthAPI, recipes RecipeAPI, upload UploadAPI) *Engine {
	session := NewIdentityProvider(local, auth)
	store := NewRecipeStore(session, local, recipes, NewMediaUploader(upload))
	bridge := NewSyncBridge(store, local, recipes)
	bridge.Bind(session)
	return &Engine{
		Session: session,
		Store:   store,
		Bridge:  bridge,
	}
}

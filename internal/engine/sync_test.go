package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmchef/hmchef/internal/model"
)

func TestRestoreLoadsLocalSnapshot(t *testing.T) {
	e := newTestEngine(t)

	seed, err := json.Marshal([]model.Recipe{
		{ID: "1", Name: "Bread", Description: "Bake it"},
		{ID: "2", Name: "Soup", Description: "Boil it"},
	})
	require.NoError(t, err)
	require.NoError(t, e.local.Set(context.Background(), "recipes", string(seed)))

	require.NoError(t, e.Session.Restore(context.Background()))

	recipes := e.Store.List()
	require.Len(t, recipes, 2)
	assert.Equal(t, "Bread", recipes[0].Name)
	assert.Equal(t, "Soup", recipes[1].Name)
}

func TestRestoreWithoutSnapshotStartsEmpty(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Session.Restore(context.Background()))
	assert.Empty(t, e.Store.List())
}

func TestRemoteLoadFailureYieldsEmptyCollection(t *testing.T) {
	e := newTestEngine(t)

	// A stale local snapshot must not leak into an authenticated session.
	seed, err := json.Marshal([]model.Recipe{{ID: "1", Name: "Bread"}})
	require.NoError(t, err)
	require.NoError(t, e.local.Set(context.Background(), "recipes", string(seed)))

	id := model.Identity{Username: "alice", AccessToken: "tok"}
	raw, err := json.Marshal(id)
	require.NoError(t, err)
	require.NoError(t, e.local.Set(context.Background(), "current_user", string(raw)))

	e.remote.On("ListRecipes", anyArg, anyArg).Return(nil, assert.AnError).Once()

	restoreErr := e.Session.Restore(context.Background())

	var loadErr *SyncLoadError
	require.ErrorAs(t, restoreErr, &loadErr)
	assert.Empty(t, e.Store.List())
	assert.True(t, e.Session.Authenticated(), "the session survives a failed load")
}

func TestCorruptLocalSnapshotYieldsEmptyCollection(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.local.Set(context.Background(), "recipes", "[broken"))

	restoreErr := e.Session.Restore(context.Background())

	var loadErr *SyncLoadError
	require.ErrorAs(t, restoreErr, &loadErr)
	assert.Empty(t, e.Store.List())
}

func TestWritesWaitForInitialLoad(t *testing.T) {
	e := newTestEngine(t)

	done := make(chan error, 1)
	go func() {
		done <- e.Store.Add(context.Background(), soup())
	}()

	select {
	case err := <-done:
		t.Fatalf("Add completed before the initial load: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, e.Session.Restore(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Add did not complete after the initial load")
	}

	require.Len(t, e.Store.List(), 1)
}

func TestReloadAfterFailureRecovers(t *testing.T) {
	e := newTestEngine(t)
	id := e.restoreAuthenticated(t, "alice", []model.Recipe{{ID: "r1", Name: "Stew"}})

	e.remote.On("ListRecipes", anyArg, id).Return(nil, assert.AnError).Once()
	err := e.Bridge.Reload(context.Background(), id)
	var loadErr *SyncLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Empty(t, e.Store.List())

	e.remote.On("ListRecipes", anyArg, id).Return([]model.Recipe{{ID: "r1", Name: "Stew"}}, nil).Once()
	require.NoError(t, e.Bridge.Reload(context.Background(), id))
	require.Len(t, e.Store.List(), 1)
}

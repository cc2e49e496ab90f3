package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmchef/hmchef/internal/client"
	"github.com/hmchef/hmchef/internal/kvstore"
	"github.com/hmchef/hmchef/internal/model"
)

// fakeService is a minimal in-process recipe service speaking the real wire
// contract, for exercising the engine through the HTTP client.
type fakeService struct {
	mu      sync.Mutex
	recipes map[string][]model.Recipe
	token   string
}

func newFakeService() *fakeService {
	return &fakeService{recipes: make(map[string][]model.Recipe), token: "tok-fake"}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": f.token})
	})
	mux.HandleFunc("/api/recipes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != f.token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "invalid token"})
			return
		}
		owner := r.URL.Query().Get("user")
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			list := f.recipes[owner]
			if list == nil {
				list = []model.Recipe{}
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"recipes": list})
		case http.MethodPost:
			var recipe model.Recipe
			_ = json.NewDecoder(r.Body).Decode(&recipe)
			f.recipes[owner] = append(f.recipes[owner], recipe)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": recipe.ID})
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			kept := f.recipes[owner][:0]
			for _, recipe := range f.recipes[owner] {
				if recipe.ID != id {
					kept = append(kept, recipe)
				}
			}
			f.recipes[owner] = kept
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		}
	})
	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "missing file field"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"image_url": "https://cdn/uploaded.jpg"})
	})
	return mux
}

func TestEngineAgainstWireContract(t *testing.T) {
	fake := newFakeService()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	api := client.New(srv.URL)
	e := New(kvstore.NewMemoryStore(), api, api, api)
	ctx := context.Background()

	require.NoError(t, e.Session.Restore(ctx))

	// Anonymous adds stay on the device.
	require.NoError(t, e.Store.Add(ctx, model.Recipe{Name: "Draft Soup"}))
	require.Len(t, e.Store.List(), 1)
	assert.Empty(t, fake.recipes)

	// Login switches the collection to the service's set.
	fake.recipes["alice"] = []model.Recipe{{ID: "r1", Name: "Remote Stew"}}
	require.NoError(t, e.Session.Login(ctx, "alice", "secret"))
	recipes := e.Store.List()
	require.Len(t, recipes, 1)
	assert.Equal(t, "Remote Stew", recipes[0].Name)

	// An authenticated add uploads the local image before persisting.
	imagePath := filepath.Join(t.TempDir(), "dish.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("fake image"), 0o600))
	require.NoError(t, e.Store.Add(ctx, model.Recipe{Name: "Soup", ImageURI: imagePath}))

	recipes = e.Store.List()
	require.Len(t, recipes, 2)
	assert.Equal(t, "https://cdn/uploaded.jpg", recipes[1].ImageURI)
	require.Len(t, fake.recipes["alice"], 2)
	assert.Equal(t, "https://cdn/uploaded.jpg", fake.recipes["alice"][1].ImageURI)

	require.NoError(t, e.Store.Delete(ctx, recipes[1].ID))
	assert.Len(t, fake.recipes["alice"], 1)

	// Logout drops everything, including the anonymous draft from before.
	require.NoError(t, e.Session.Logout(ctx))
	assert.Empty(t, e.Store.List())
	assert.False(t, e.Session.Authenticated())
}

func TestEngineLoginRejectionOverWire(t *testing.T) {
	fake := newFakeService()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	api := client.New(srv.URL)
	e := New(kvstore.NewMemoryStore(), api, api, api)
	ctx := context.Background()

	require.NoError(t, e.Session.Restore(ctx))

	err := e.Session.Login(ctx, "alice", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid username or password", authErr.Detail)
	assert.False(t, e.Session.Authenticated())
}

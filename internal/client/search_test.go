package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mealFixture = `{
  "meals": [
    {
      "idMeal": "52940",
      "strMeal": "Brown Stew Chicken",
      "strCategory": "Chicken",
      "strInstructions": "Squeeze lime over chicken and rub well.",
      "strMealThumb": "https://www.themealdb.com/images/media/meals/sypxpx1515365095.jpg",
      "strIngredient1": "Chicken",
      "strIngredient2": "Tomato",
      "strIngredient3": "",
      "strIngredient4": null,
      "strMeasure1": "1 whole",
      "strMeasure2": "1 chopped",
      "strMeasure3": "",
      "strMeasure4": null
    }
  ]
}`

func TestSearchMapsMealsToRecipes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "brown stew", r.URL.Query().Get("s"))
		_, _ = w.Write([]byte(mealFixture))
	}))
	defer srv.Close()

	results, err := NewSearchClient(srv.URL).Search(context.Background(), "brown stew")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "52940", r.ID)
	assert.Equal(t, "Brown Stew Chicken", r.Name)
	assert.Equal(t, "Chicken", r.Category)
	assert.Equal(t, "https://www.themealdb.com/images/media/meals/sypxpx1515365095.jpg", r.ImageURI)
	assert.Equal(t,
		"Squeeze lime over chicken and rub well.\n\nIngredients:\n - 1 whole Chicken\n - 1 chopped Tomato",
		r.Description)
}

func TestSearchNoMatchesReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals": null}`))
	}))
	defer srv.Close()

	results, err := NewSearchClient(srv.URL).Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewSearchClient(srv.URL).Search(context.Background(), "stew")

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusTooManyRequests, remote.StatusCode)
}

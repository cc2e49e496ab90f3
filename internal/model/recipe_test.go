package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeJSONKeys(t *testing.T) {
	raw, err := json.Marshal(Recipe{
		ID:       "42",
		Name:     "Soup",
		ImageURI: "https://cdn/soup.jpg",
	})
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "42", decoded["id"])
	assert.Equal(t, "Soup", decoded["name"])
	// The mobile client reads imageUri, camel case.
	assert.Equal(t, "https://cdn/soup.jpg", decoded["imageUri"])
}

func TestSameDishIgnoresID(t *testing.T) {
	a := Recipe{ID: "1", Name: "Soup", Description: "Boil it"}
	b := Recipe{ID: "52772", Name: "Soup", Description: "Boil it"}
	assert.True(t, a.SameDish(b))

	c := Recipe{ID: "1", Name: "Soup", Description: "Grill it"}
	assert.False(t, a.SameDish(c))
}

func TestIsRemoteRef(t *testing.T) {
	assert.True(t, IsRemoteRef("https://cdn/x.jpg"))
	assert.True(t, IsRemoteRef("HTTP://cdn/x.jpg"))
	assert.False(t, IsRemoteRef("file:///tmp/x.jpg"))
	assert.False(t, IsRemoteRef("/tmp/x.jpg"))
	assert.False(t, IsRemoteRef(""))
}

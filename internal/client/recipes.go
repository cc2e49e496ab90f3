package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hmchef/hmchef/internal/model"
)

type listResponse struct {
	Recipes []model.Recipe `json:"recipes"`
}

type mutationResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Detail  string `json:"detail"`
}

// ListRecipes fetches the full collection for the authenticated principal.
func (c *Client) ListRecipes(ctx context.Context, id *model.Identity) ([]model.Recipe, error) {
	endpoint := fmt.Sprintf("%s/api/recipes?user=%s", c.baseURL, url.QueryEscape(id.Username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	authorize(req, id)

	var resp listResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// CreateRecipe submits a recipe for remote persistence and returns the id
// the service confirmed, which may differ from the one submitted.
func (c *Client) CreateRecipe(ctx context.Context, id *model.Identity, recipe model.Recipe) (string, error) {
	body, err := json.Marshal(recipe)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/api/recipes?user=%s", c.baseURL, url.QueryEscape(id.Username))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, id)

	var resp mutationResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &RemoteError{StatusCode: http.StatusUnprocessableEntity, Detail: resp.Detail}
	}
	if resp.ID != "" {
		return resp.ID, nil
	}
	return recipe.ID, nil
}

// DeleteRecipe asks the service to remove the recipe with recipeID.
func (c *Client) DeleteRecipe(ctx context.Context, id *model.Identity, recipeID string) error {
	endpoint := fmt.Sprintf("%s/api/recipes?id=%s&user=%s",
		c.baseURL, url.QueryEscape(recipeID), url.QueryEscape(id.Username))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	authorize(req, id)

	var resp mutationResponse
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &RemoteError{StatusCode: http.StatusUnprocessableEntity, Detail: resp.Detail}
	}
	return nil
}

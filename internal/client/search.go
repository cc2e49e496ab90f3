package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hmchef/hmchef/internal/model"
)

// DefaultSearchBaseURL is TheMealDB's free API tier.
const DefaultSearchBaseURL = "https://www.themealdb.com/api/json/v1/1"

// SearchClient queries the third-party recipe search provider. Results are
// ordinary recipe candidates with externally-assigned ids; the engine treats
// them like any other add.
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSearchClient creates a SearchClient. An empty baseURL selects
// DefaultSearchBaseURL.
func NewSearchClient(baseURL string) *SearchClient {
	if baseURL == "" {
		baseURL = DefaultSearchBaseURL
	}
	return &SearchClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchResponse struct {
	Meals []map[string]*string `json:"meals"`
}

// Search looks up meals by name and maps them onto the local recipe shape.
// A term with no matches returns an empty slice, not an error.
func (c *SearchClient) Search(ctx context.Context, term string) ([]model.Recipe, error) {
	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.baseURL, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]model.Recipe, 0, len(payload.Meals))
	for _, meal := range payload.Meals {
		results = append(results, model.Recipe{
			ID:          field(meal, "idMeal"),
			Name:        field(meal, "strMeal"),
			Description: buildDescription(meal),
			Category:    field(meal, "strCategory"),
			ImageURI:    field(meal, "strMealThumb"),
		})
	}
	return results, nil
}

// buildDescription renders the instructions followed by the ingredient list.
// TheMealDB spreads ingredients over twenty numbered fields, empty or null
// past the last one.
func buildDescription(meal map[string]*string) string {
	var b strings.Builder
	b.WriteString(field(meal, "strInstructions"))
	b.WriteString("\n\nIngredients:")
	for i := 1; i <= 20; i++ {
		ingredient := field(meal, fmt.Sprintf("strIngredient%d", i))
		if ingredient == "" {
			continue
		}
		measure := field(meal, fmt.Sprintf("strMeasure%d", i))
		b.WriteString("\n - " + measure + " " + ingredient)
	}
	return b.String()
}

func field(meal map[string]*string, key string) string {
	if v := meal[key]; v != nil {
		return *v
	}
	return ""
}

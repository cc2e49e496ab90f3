package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hmchef/hmchef/internal/models"
)

var ErrDuplicateID = errors.New("recipe id already exists")

const listCacheTTL = 5 * time.Minute

// RecipeService handles per-user recipe persistence, with an optional redis
// cache in front of the list query.
type RecipeService struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewRecipeService creates a RecipeService. cache may be nil, which
// disables caching.
func NewRecipeService(db *gorm.DB, cache *redis.Client) *RecipeService {
	return &RecipeService{
		db:    db,
		cache: cache,
	}
}

// ListRecipes returns the owner's collection in insertion order.
func (s *RecipeService) ListRecipes(ctx context.Context, owner string) ([]models.Recipe, error) {
	if cached, ok := s.cachedList(ctx, owner); ok {
		return cached, nil
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at, id").
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	s.storeList(ctx, owner, recipes)
	return recipes, nil
}

// CreateRecipe persists a recipe for owner. A client-supplied id is kept
// verbatim; a missing one gets a server-issued uuid. A second recipe with
// the same id in the same collection is refused.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}

	var existing models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner = ?", recipe.ID, recipe.Owner).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, recipe.Owner)
	return recipe, nil
}

// DeleteRecipe removes the recipe with id from owner's collection.
func (s *RecipeService) DeleteRecipe(ctx context.Context, owner, id string) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		First(&recipe).Error; err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&models.Recipe{}).Error; err != nil {
		return err
	}

	s.invalidate(ctx, owner)
	return nil
}

// Cache failures are logged, never surfaced; the database stays
// authoritative.

func (s *RecipeService) cachedList(ctx context.Context, owner string) ([]models.Recipe, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, listCacheKey(owner)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("recipe cache read failed for %s: %v", owner, err)
		}
		return nil, false
	}
	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		log.Printf("recipe cache decode failed for %s: %v", owner, err)
		return nil, false
	}
	return recipes, true
}

func (s *RecipeService) storeList(ctx context.Context, owner string, recipes []models.Recipe) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, listCacheKey(owner), raw, listCacheTTL).Err(); err != nil {
		log.Printf("recipe cache write failed for %s: %v", owner, err)
	}
}

func (s *RecipeService) invalidate(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey(owner)).Err(); err != nil {
		log.Printf("recipe cache invalidation failed for %s: %v", owner, err)
	}
}

func listCacheKey(owner string) string {
	return "recipes:" + owner
}

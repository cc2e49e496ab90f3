package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hmchef/hmchef/internal/model"
	"github.com/hmchef/hmchef/internal/models"
	"github.com/hmchef/hmchef/internal/service"
)

// RecipeHandler serves the per-user recipe collection. Every route is keyed
// by the user query parameter, which the middleware has already matched
// against the token.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.ListRecipes)
	router.POST("/recipes", h.CreateRecipe)
	router.DELETE("/recipes", h.DeleteRecipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	owner := c.Query("user")

	rows, err := h.recipes.ListRecipes(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch recipes"})
		return
	}

	recipes := make([]model.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, model.Recipe{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			ImageURI:    row.ImageURI,
		})
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	owner := c.Query("user")

	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "Invalid recipe body"})
		return
	}
	if recipe.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "Recipe name is required"})
		return
	}

	row := models.Recipe{
		ID:          recipe.ID,
		Owner:       owner,
		Name:        recipe.Name,
		Description: recipe.Description,
		Category:    recipe.Category,
		ImageURI:    recipe.ImageURI,
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &row)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateID) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "detail": "Recipe id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "detail": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": created.ID})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	owner := c.Query("user")
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "missing id parameter"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), owner, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "detail": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "detail": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

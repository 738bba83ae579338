package handlers

import (
	"net/http"

	"recipeshare/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errMustLoginView   = "must be logged in to view recipes"
	errMustLoginCreate = "must be logged in to create recipes"
	errListRecipes     = "failed to load recipes"
)

// Request DTO for recipe creation. The owner is never read from the body.
type createRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete,omitempty"`
}

// @Summary      List recipes
// @Description  Returns every recipe with its owner summary. No filtering or pagination.
// @Tags         recipes
// @Produce      json
// @Success      200  {array}   models.Recipe
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /recipes [get]
func (h *Handler) listRecipes(c *gin.Context) {
	if currentUserID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMustLoginView})
		return
	}

	recipes, err := h.services.Recipes.List(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("recipes_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errListRecipes})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// @Summary      Create recipe
// @Description  Owner is taken from the active session.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body   createRecipeRequest  true  "Recipe payload"
// @Success      201   {object}  models.Recipe
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /recipes [post]
func (h *Handler) createRecipe(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMustLoginCreate})
		return
	}

	var input createRecipeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	recipe, err := h.services.Recipes.Create(c.Request.Context(), userID, service.CreateRecipeParams{
		Title:             input.Title,
		Instructions:      input.Instructions,
		MinutesToComplete: input.MinutesToComplete,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("recipe_create_failed", "user_id", userID, "err", err)
		}
		h.writeServiceError(c, "recipe_create_error", err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"forkful/internal/middleware"
	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// defaultBrowseLimit matches the repository cap: browse returns up to 50
// rows unless the client narrows it.
const defaultBrowseLimit = 50

// GetRecipes handles GET /api/recipes
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, defaultBrowseLimit)

	authorID := c.QueryInt("authorId", 0)
	if authorID < 0 {
		authorID = 0
	}

	recipes, err := s.recipeService.ListRecipes(ctx, service.ListRecipesInput{
		Search:        c.Query("search"),
		AuthorID:      uint(authorID),
		Tag:           c.Query("tag"),
		Limit:         page.Limit,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

type recipePayload struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Ingredients  []string          `json:"ingredients"`
	Steps        []string          `json:"steps"`
	Tags         []string          `json:"tags"`
	DietaryTags  []string          `json:"dietary_tags"`
	Notes        string            `json:"notes"`
	PrepTime     int               `json:"prep_time"`
	CookTime     int               `json:"cook_time"`
	Servings     int               `json:"servings"`
	Difficulty   models.Difficulty `json:"difficulty"`
	Cuisine      string            `json:"cuisine"`
	ImageURL     string            `json:"image_url"`
	IsPublic     *bool             `json:"is_public"`
	ForkedFromID *uint             `json:"forked_from_id"`
}

// CreateRecipe handles POST /api/recipes. A request with forked_from_id set
// creates a fork of that recipe.
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), service.CreateRecipeInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Steps:        req.Steps,
		Tags:         req.Tags,
		DietaryTags:  req.DietaryTags,
		Notes:        req.Notes,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Cuisine:      req.Cuisine,
		ImageURL:     req.ImageURL,
		IsPublic:     req.IsPublic,
		ForkedFromID: req.ForkedFromID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	operation := "create"
	if req.ForkedFromID != nil {
		operation = "fork"
	}
	middleware.RecipeWrites.WithLabelValues(operation).Inc()

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

type updateRecipePayload struct {
	Title         *string            `json:"title"`
	Description   *string            `json:"description"`
	Ingredients   []string           `json:"ingredients"`
	Steps         []string           `json:"steps"`
	Tags          []string           `json:"tags"`
	DietaryTags   []string           `json:"dietary_tags"`
	Notes         *string            `json:"notes"`
	PrepTime      *int               `json:"prep_time"`
	CookTime      *int               `json:"cook_time"`
	Servings      *int               `json:"servings"`
	Difficulty    *models.Difficulty `json:"difficulty"`
	Cuisine       *string            `json:"cuisine"`
	ImageURL      *string            `json:"image_url"`
	IsPublic      *bool              `json:"is_public"`
	IsArchived    *bool              `json:"is_archived"`
	CommitMessage string             `json:"commit_message"`
}

// UpdateRecipe handles PUT /api/recipes/:id. Absent fields are left
// untouched; every successful update appends a commit.
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateRecipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), service.UpdateRecipeInput{
		UserID:        userID,
		RecipeID:      recipeID,
		Title:         req.Title,
		Description:   req.Description,
		Ingredients:   req.Ingredients,
		Steps:         req.Steps,
		Tags:          req.Tags,
		DietaryTags:   req.DietaryTags,
		Notes:         req.Notes,
		PrepTime:      req.PrepTime,
		CookTime:      req.CookTime,
		Servings:      req.Servings,
		Difficulty:    req.Difficulty,
		Cuisine:       req.Cuisine,
		ImageURL:      req.ImageURL,
		IsPublic:      req.IsPublic,
		IsArchived:    req.IsArchived,
		CommitMessage: req.CommitMessage,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.RecipeWrites.WithLabelValues("update").Inc()

	return c.JSON(recipe)
}

// GetRecipeCommits handles GET /api/recipes/:id/commits
func (s *Server) GetRecipeCommits(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	commits, err := s.recipeService.ListCommits(c.Context(), recipeID, currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(commits)
}

// LikeRecipe handles POST /api/recipes/:id/like
func (s *Server) LikeRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.LikeRecipe(c.Context(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

// UnlikeRecipe handles DELETE /api/recipes/:id/like
func (s *Server) UnlikeRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.UnlikeRecipe(c.Context(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

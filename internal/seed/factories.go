// Package seed provides helpers to create demo and test data for the
// Forkful database. These helpers are intended for development and
// testing only.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"forkful/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var cuisines = []string{
	"Italian", "French", "Mexican", "Thai", "Japanese", "Indian",
	"Greek", "Korean", "Vietnamese", "Spanish", "Moroccan", "American",
}

var difficulties = []models.Difficulty{
	models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard,
}

var tagPool = []string{
	"weeknight", "comfort-food", "one-pot", "meal-prep", "grilling",
	"baking", "slow-cooker", "30-minutes", "budget", "crowd-pleaser",
	"date-night", "leftovers", "spicy", "kid-friendly",
}

var dietaryPool = []string{
	"vegetarian", "vegan", "gluten-free", "dairy-free", "nut-free",
	"low-carb", "keto", "pescatarian",
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	// uuid suffix keeps generated usernames unique across runs
	suffix := uuid.NewString()[:8]
	username := strings.ToLower(gofakeit.Username()) + "-" + suffix

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Name:     gofakeit.Name(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", suffix),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildRecipe constructs a recipe struct without persisting it. Useful
// for batching and for overriding fields before the initial commit is
// written.
func (f *Factory) BuildRecipe(author *models.User, overrides ...func(*models.Recipe)) *models.Recipe {
	recipe := &models.Recipe{
		Title:       f.dishName(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Ingredients: f.ingredientList(),
		Steps:       f.stepList(),
		Tags:        pick(f.r, tagPool, 1+f.r.Intn(3)),
		Notes:       gofakeit.Sentence(8),
		PrepTime:    5 + f.r.Intn(40),
		CookTime:    10 + f.r.Intn(110),
		Servings:    2 + f.r.Intn(7),
		Difficulty:  difficulties[f.r.Intn(len(difficulties))],
		Cuisine:     cuisines[f.r.Intn(len(cuisines))],
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", uuid.NewString()[:8]),
		IsPublic:    f.r.Float32() < 0.85,
		AuthorID:    author.ID,
	}

	if f.r.Float32() < 0.4 {
		recipe.DietaryTags = pick(f.r, dietaryPool, 1+f.r.Intn(2))
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(recipe)
	}
	return recipe
}

// CreateRecipe persists a recipe together with its version-1 commit.
func (f *Factory) CreateRecipe(author *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := f.BuildRecipe(author, overrides...)
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		commit := &models.Commit{
			RecipeID:  recipe.ID,
			Message:   models.InitialCommitMessage,
			Changes:   changesJSON(models.CommitTypeCreate, recipe),
			Version:   1,
			CreatedAt: recipe.CreatedAt,
		}
		return tx.Create(commit).Error
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateFork persists a copy of the ancestor owned by the given author,
// with a weak back-reference and its own version-1 commit.
func (f *Factory) CreateFork(author *models.User, ancestor *models.Recipe) (*models.Recipe, error) {
	return f.CreateRecipe(author, func(r *models.Recipe) {
		r.Title = ancestor.Title
		r.Description = ancestor.Description
		r.Ingredients = ancestor.Ingredients
		r.Steps = ancestor.Steps
		r.Tags = ancestor.Tags
		r.DietaryTags = ancestor.DietaryTags
		r.Cuisine = ancestor.Cuisine
		r.Difficulty = ancestor.Difficulty
		r.ForkedFromID = &ancestor.ID
		r.IsPublic = true
		if r.CreatedAt.Before(ancestor.CreatedAt) {
			r.CreatedAt = ancestor.CreatedAt.Add(time.Duration(1+f.r.Intn(72)) * time.Hour)
		}
	})
}

// CreateUpdateCommit mutates one field of the recipe and appends the next
// contiguous commit, mirroring what an edit through the API produces.
func (f *Factory) CreateUpdateCommit(recipe *models.Recipe) (*models.Commit, error) {
	recipe.Notes = gofakeit.Sentence(10)
	changed := map[string]interface{}{"notes": recipe.Notes}

	var commit *models.Commit
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		var maxVersion int
		row := tx.Model(&models.Commit{}).
			Where("recipe_id = ?", recipe.ID).
			Select("COALESCE(MAX(version), 0)").
			Row()
		if err := row.Scan(&maxVersion); err != nil {
			return err
		}
		commit = &models.Commit{
			RecipeID: recipe.ID,
			Message:  f.commitMessage(),
			Changes:  changesJSON(models.CommitTypeUpdate, changed),
			Version:  maxVersion + 1,
		}
		return tx.Create(commit).Error
	})
	if err != nil {
		return nil, err
	}
	return commit, nil
}

// CreateComment persists a comment from the user on the recipe.
func (f *Factory) CreateComment(user *models.User, recipe *models.Recipe) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(6 + f.r.Intn(14)),
		RecipeID: recipe.ID,
		AuthorID: user.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from the user on the recipe. Duplicate pairs
// fail on the unique index; callers seed distinct pairs.
func (f *Factory) CreateLike(user *models.User, recipe *models.Recipe) error {
	like := &models.Like{RecipeID: recipe.ID, UserID: user.ID}
	return f.db.Create(like).Error
}

// CreateFollow persists a directed follow edge between two users.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	edge := &models.Follow{FollowerID: follower.ID, FollowingID: following.ID}
	return f.db.Create(edge).Error
}

var commitVerbs = []string{
	"Adjust", "Rework", "Simplify", "Tweak", "Rebalance", "Fix",
}

var commitTargets = []string{
	"seasoning", "cook time", "the sauce", "ingredient amounts",
	"the resting step", "oven temperature", "plating notes",
}

func (f *Factory) commitMessage() string {
	return fmt.Sprintf("%s %s", commitVerbs[f.r.Intn(len(commitVerbs))], commitTargets[f.r.Intn(len(commitTargets))])
}

func (f *Factory) dishName() string {
	switch f.r.Intn(4) {
	case 0:
		return gofakeit.Breakfast()
	case 1:
		return gofakeit.Lunch()
	case 2:
		return gofakeit.Dessert()
	default:
		return gofakeit.Dinner()
	}
}

func (f *Factory) ingredientList() []string {
	n := 4 + f.r.Intn(7)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		switch f.r.Intn(3) {
		case 0:
			out = append(out, fmt.Sprintf("%d %s", 1+f.r.Intn(4), gofakeit.Vegetable()))
		case 1:
			out = append(out, fmt.Sprintf("%dg %s", 50+f.r.Intn(400), gofakeit.Fruit()))
		default:
			out = append(out, gofakeit.Snack())
		}
	}
	return out
}

func (f *Factory) stepList() []string {
	n := 3 + f.r.Intn(6)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, gofakeit.Sentence(8+f.r.Intn(8)))
	}
	return out
}

// pick returns n distinct random elements of pool.
func pick(r *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	idx := r.Perm(len(pool))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func changesJSON(changeType string, data interface{}) string {
	payload, err := json.Marshal(map[string]interface{}{
		"type": changeType,
		"data": data,
	})
	if err != nil {
		return fmt.Sprintf(`{"type":%q}`, changeType)
	}
	return string(payload)
}

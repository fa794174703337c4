package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
}

// Seeder populates the database with demo data. It owns a Factory and a
// dedicated random source so runs are independent.
type Seeder struct {
	db *gorm.DB
	f  *Factory
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	//nolint:gosec // weak randomness is fine for seeding
	return &Seeder{db: db, f: NewFactory(db), r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Seed populates the database with test data.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.SeedSocialMesh(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("%d users created", len(users))

	recipes, err := s.SeedRecipes(users, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}
	log.Printf("%d recipes created", len(recipes))

	if err := s.SeedEngagement(users, recipes); err != nil {
		return fmt.Errorf("failed to seed engagement: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

// ClearAll truncates every seeded table. Postgres only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, follows, commits, recipes, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedSocialMesh creates count users and a follow graph between them.
// Each user follows roughly 15% of the others.
func (s *Seeder) SeedSocialMesh(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Fixed users make manual testing against a fresh seed predictable.
	if count >= 3 {
		for _, name := range []string{"alice", "bob", "test"} {
			u, err := s.f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
			})
			if err != nil {
				// Likely already present from a previous unclean run.
				log.Printf("Skipping base user %s: %v", name, err)
				continue
			}
			users = append(users, u)
		}
	}

	for i := len(users); i < count; i++ {
		u, err := s.f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, u)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID {
				continue
			}
			if s.r.Float32() < 0.15 {
				if err := s.f.CreateFollow(follower, following); err != nil {
					log.Printf("Failed to create follow: %v", err)
				}
			}
		}
	}

	return users, nil
}

// SeedRecipes creates count recipes spread across the given users. Roughly
// a fifth of them are forks of an earlier recipe, and a third pick up an
// update commit on top of the initial one.
func (s *Seeder) SeedRecipes(users []*models.User, count int) ([]*models.Recipe, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot seed recipes without users")
	}

	recipes := make([]*models.Recipe, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.r.Intn(len(users))]

		var (
			recipe *models.Recipe
			err    error
		)
		if len(recipes) > 0 && s.r.Float32() < 0.2 {
			ancestor := recipes[s.r.Intn(len(recipes))]
			recipe, err = s.f.CreateFork(author, ancestor)
		} else {
			recipe, err = s.f.CreateRecipe(author)
		}
		if err != nil {
			log.Printf("Failed to create recipe: %v", err)
			continue
		}

		if s.r.Float32() < 0.3 {
			if _, err := s.f.CreateUpdateCommit(recipe); err != nil {
				log.Printf("Failed to create update commit: %v", err)
			}
		}

		recipes = append(recipes, recipe)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d recipes...", i)
		}
	}

	return recipes, nil
}

// SeedEngagement sprinkles likes and comments over the recipes. Each user
// likes roughly a quarter of the public recipes and comments on a tenth.
func (s *Seeder) SeedEngagement(users []*models.User, recipes []*models.Recipe) error {
	var likes, comments int
	for _, user := range users {
		for _, recipe := range recipes {
			if !recipe.IsPublic && recipe.AuthorID != user.ID {
				continue
			}
			if s.r.Float32() < 0.25 {
				if err := s.f.CreateLike(user, recipe); err == nil {
					likes++
				}
			}
			if s.r.Float32() < 0.1 {
				if _, err := s.f.CreateComment(user, recipe); err == nil {
					comments++
				}
			}
		}
	}
	log.Printf("%d likes and %d comments created", likes, comments)
	return nil
}

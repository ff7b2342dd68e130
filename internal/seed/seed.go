package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	MaxDays     int
	SkipBcrypt  bool
	ShouldClean bool
}

var groupTitles = []string{
	"Travel Notes", "Kitchen Stories", "Night Photography", "Book Margins",
	"City Walks", "Home Gardening", "Film Diary", "Weekend Projects",
	"Mountain Trails", "Letters From Nowhere", "Slow Cooking", "Field Recordings",
}

// Seed populates the database with demo users, groups, and posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users, %d groups, %d posts...", opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	numGroups := opts.NumGroups
	if numGroups > len(groupTitles) {
		numGroups = len(groupTitles)
	}
	groups := make([]*models.Group, 0, numGroups)
	for i := 0; i < numGroups; i++ {
		group, err := factory.CreateGroup(groupTitles[i])
		if err != nil {
			return fmt.Errorf("failed to create groups: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("created %d groups", len(groups))

	if len(users) == 0 {
		return nil
	}

	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		// Roughly a third of posts stay ungrouped.
		var group *models.Group
		if len(groups) > 0 && r.Intn(3) != 0 {
			group = groups[r.Intn(len(groups))]
		}
		posts = append(posts, factory.BuildPost(author, group))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data...")
	sql := `TRUNCATE TABLE posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

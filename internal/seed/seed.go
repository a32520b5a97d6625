// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"strings"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password assigned to every generated account.
const DefaultPassword = "password123"

var categories = []string{
	models.DefaultCategory, "Technology", "Travel", "Food", "Fitness",
	"Programming", "Design", "Finance", "Music", "Books",
}

// Seeder populates the database with generated authors, posts, and
// engagement data.
type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewSeeder creates a seeder. Pass a non-zero seed for reproducible output.
func NewSeeder(db *gorm.DB, fakerSeed int64) *Seeder {
	return &Seeder{
		db:    db,
		faker: gofakeit.New(fakerSeed),
	}
}

// ClearAll removes all seeded data. Order matters: engagement rows reference
// posts, posts reference users.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{}, &models.Like{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// SeedAuthors creates n accounts with generated identities.
func (s *Seeder) SeedAuthors(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(s.faker.Username()), i)
		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, s.faker.DomainName()),
			Password: string(hashed),
			Bio:      s.faker.Sentence(12),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user %q: %w", username, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d authors", len(users))
	return users, nil
}

// SeedPosts creates n posts spread across the given authors. Roughly a third
// stay drafts.
func (s *Seeder) SeedPosts(authors []*models.User, n int) ([]*models.Post, error) {
	if len(authors) == 0 {
		return nil, fmt.Errorf("no authors to attribute posts to")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := authors[s.faker.Number(0, len(authors)-1)]
		post := &models.Post{
			Title:       s.faker.Sentence(6),
			SubTitle:    s.faker.Sentence(10),
			Category:    categories[s.faker.Number(0, len(categories)-1)],
			Description: s.faker.Paragraph(3, 5, 12, "\n\n"),
			IsPublished: s.faker.Number(0, 2) != 0,
			AuthorID:    author.ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// SeedEngagement scatters likes, comments, and share counts across published
// posts.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	var likes, comments int
	for _, post := range posts {
		if !post.IsPublished {
			continue
		}

		for _, user := range users {
			if s.faker.Number(0, 3) != 0 {
				continue
			}
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			likes++
		}

		for i := 0; i < s.faker.Number(0, 4); i++ {
			commenter := users[s.faker.Number(0, len(users)-1)]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   s.faker.Sentence(14),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments++
		}

		shares := uint(s.faker.Number(0, 40))
		if err := s.db.Model(post).UpdateColumn("shares", shares).Error; err != nil {
			return fmt.Errorf("set shares: %w", err)
		}
	}
	log.Printf("Seeded %d likes, %d comments", likes, comments)
	return nil
}

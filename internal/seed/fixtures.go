package seed

import (
	"fmt"
	"os"
	"strings"

	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// fixtureFile is the on-disk shape of a curated seed fixture.
type fixtureFile struct {
	Users []fixtureUser `yaml:"users"`
}

type fixtureUser struct {
	Username string        `yaml:"username"`
	Email    string        `yaml:"email"`
	Bio      string        `yaml:"bio"`
	Posts    []fixturePost `yaml:"posts"`
}

type fixturePost struct {
	Title       string `yaml:"title"`
	SubTitle    string `yaml:"sub_title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	IsPublished bool   `yaml:"is_published"`
	Shares      uint   `yaml:"shares"`
}

// LoadFixtures reads a YAML fixture file describing curated users and posts.
func LoadFixtures(path string) (*fixtureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// ApplyFixtures inserts the curated users and their posts. Existing usernames
// are skipped so fixtures can be re-applied.
func ApplyFixtures(db *gorm.DB, f *fixtureFile) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}

	for _, fu := range f.Users {
		var existing models.User
		err := db.Where("username = ?", fu.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("lookup fixture user %q: %w", fu.Username, err)
		}

		user := models.User{
			Username: fu.Username,
			Email:    strings.ToLower(fu.Email),
			Password: string(hashed),
			Bio:      fu.Bio,
		}
		for _, fp := range fu.Posts {
			category := fp.Category
			if category == "" {
				category = models.DefaultCategory
			}
			user.Posts = append(user.Posts, models.Post{
				Title:       fp.Title,
				SubTitle:    fp.SubTitle,
				Category:    category,
				Description: fp.Description,
				IsPublished: fp.IsPublished,
				Shares:      fp.Shares,
			})
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create fixture user %q: %w", fu.Username, err)
		}
	}
	return nil
}

// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of authors to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fakerSeed := flag.Int64("seed", 0, "Faker seed (0 = random)")
	fixtures := flag.String("fixtures", "", "Path to a YAML fixture file of curated content")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	s := seed.NewSeeder(db, *fakerSeed)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *fixtures != "" {
		f, err := seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("Fixture loading failed: %v", err)
		}
		if err := seed.ApplyFixtures(db, f); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	}

	authors, err := s.SeedAuthors(*numUsers)
	if err != nil {
		log.Fatalf("Author seeding failed: %v", err)
	}
	posts, err := s.SeedPosts(authors, *numPosts)
	if err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}
	if err := s.SeedEngagement(authors, posts); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}

	log.Printf("Done. All generated accounts use the password %q", seed.DefaultPassword)
}

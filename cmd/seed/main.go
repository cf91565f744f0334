// Command main runs the database seeder.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()

	numUsers := flag.Int("users", defaults.NumUsers, "Number of users to create")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of posts to create")
	maxComments := flag.Int("comments", defaults.MaxCommentsPerPost, "Maximum comments per post")
	maxShares := flag.Int("shares", defaults.MaxSharesPerPost, "Maximum shares per post")
	likeRatio := flag.Float64("like-ratio", defaults.LikeRatio, "Chance that a user likes a post (0-1)")
	tokens := flag.Int("tokens", defaults.TokenCount, "Number of dev tokens to print")
	tokenTTL := flag.Duration("token-ttl", defaults.TokenTTL, "Dev token lifetime")
	seedValue := flag.Int64("seed", 0, "Random seed (0 picks one)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	res, err := seed.NewSeeder(db, *seedValue).Run(ctx, seed.Options{
		NumUsers:           *numUsers,
		NumPosts:           *numPosts,
		ShouldClean:        *shouldClean,
		MaxCommentsPerPost: *maxComments,
		MaxSharesPerPost:   *maxShares,
		LikeRatio:          *likeRatio,
		JWTSecret:          cfg.JWTSecret,
		TokenTTL:           *tokenTTL,
		TokenCount:         *tokens,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d posts, %d comments, %d likes, %d shares",
		len(res.Users), len(res.Posts), res.Comments, res.Likes, res.Shares)
	log.Printf("All seeded users share the password %q", seed.DefaultPassword)

	for _, tok := range res.Tokens {
		fmt.Printf("%s (id %d)\n  Authorization: Bearer %s\n", tok.Username, tok.UserID, tok.Token)
	}
}

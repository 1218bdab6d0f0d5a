package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"content-recsys/internal/models"
	"content-recsys/internal/repository"
	"content-recsys/pkg/config"
	"content-recsys/pkg/logger"
	"content-recsys/pkg/postgres"

	"go.uber.org/zap"
)

// Seeds the database with a deterministic synthetic dataset and writes a
// matching demo classifier, so the service can run locally end to end.

const (
	postCount = 200
	userCount = 100
	seed      = 42
)

var (
	topics    = []string{"business", "covid", "entertainment", "movie", "politics", "sport", "tech"}
	countries = []string{"Russia", "Belarus", "Kazakhstan", "Ukraine", "Finland"}
	cities    = []string{"Moscow", "Minsk", "Almaty", "Kyiv", "Helsinki", "Saint Petersburg"}
	osNames   = []string{"Android", "iOS"}
	sources   = []string{"ads", "organic"}
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, cfg.Database.URI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	postRepo := repository.NewPostRepository(db, appLogger)
	userRepo := repository.NewUserRepository(db, appLogger)
	feedRepo := repository.NewFeedRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	rng := rand.New(rand.NewSource(seed))

	posts, features := generatePosts(rng)
	if err := postRepo.InsertPosts(ctx, posts); err != nil {
		appLogger.Fatal("Failed to seed posts", zap.Error(err))
	}
	if err := postRepo.InsertPostFeatures(ctx, features); err != nil {
		appLogger.Fatal("Failed to seed post features", zap.Error(err))
	}

	users := generateUsers(rng)
	if err := userRepo.InsertUsers(ctx, users); err != nil {
		appLogger.Fatal("Failed to seed users", zap.Error(err))
	}

	events := generateFeedEvents(rng, users, posts)
	if err := feedRepo.InsertFeedEvents(ctx, events); err != nil {
		appLogger.Fatal("Failed to seed feed events", zap.Error(err))
	}

	if err := writeDemoModel(cfg.Model.Path); err != nil {
		appLogger.Fatal("Failed to write demo model", zap.Error(err))
	}

	appLogger.Info("Database seeding completed",
		zap.Int("posts", len(posts)),
		zap.Int("users", len(users)),
		zap.Int("feed_events", len(events)),
		zap.String("model", cfg.Model.Path),
	)
}

func generatePosts(rng *rand.Rand) ([]models.Post, []models.PostFeatures) {
	posts := make([]models.Post, 0, postCount)
	features := make([]models.PostFeatures, 0, postCount)

	for i := 1; i <= postCount; i++ {
		topic := topics[rng.Intn(len(topics))]
		posts = append(posts, models.Post{
			ID:    int64(i),
			Text:  fmt.Sprintf("Synthetic %s post #%d", topic, i),
			Topic: topic,
		})

		pf := models.PostFeatures{
			PostID:      int64(i),
			Topic:       topic,
			TextCluster: rng.Intn(models.ClusterCount),
		}
		for j := range pf.ClusterDistances {
			pf.ClusterDistances[j] = rng.Float64() * 10
		}
		features = append(features, pf)
	}

	return posts, features
}

func generateUsers(rng *rand.Rand) []models.User {
	users := make([]models.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		country := countries[rng.Intn(len(countries))]
		users = append(users, models.User{
			ID:       int64(i),
			Gender:   rng.Intn(2),
			Age:      14 + rng.Intn(50),
			Country:  country,
			City:     cities[rng.Intn(len(cities))],
			ExpGroup: rng.Intn(4),
			OS:       osNames[rng.Intn(len(osNames))],
			Source:   sources[rng.Intn(len(sources))],
		})
	}
	return users
}

func generateFeedEvents(rng *rand.Rand, users []models.User, posts []models.Post) []models.FeedEvent {
	// Events straddle the training cutoff so the historical like aggregate
	// has something to count on both sides.
	start := repository.LikeCountCutoff.AddDate(0, -2, 0)

	var events []models.FeedEvent
	for _, u := range users {
		seen := make(map[int64]struct{})
		n := rng.Intn(30)
		for j := 0; j < n; j++ {
			post := posts[rng.Intn(len(posts))]
			if _, dup := seen[post.ID]; dup {
				continue
			}
			seen[post.ID] = struct{}{}

			action := "view"
			target := 0
			if rng.Float64() < 0.4 {
				action = "like"
				target = 1
			}
			events = append(events, models.FeedEvent{
				UserID:    u.ID,
				PostID:    post.ID,
				Action:    action,
				Target:    target,
				Timestamp: start.Add(time.Duration(rng.Intn(100*24)) * time.Hour),
			})
		}
	}
	return events
}

func writeDemoModel(path string) error {
	weights := map[string]float64{
		"age":              -0.01,
		"user_total_likes": 0.05,
		"text_cluster":     0.02,
		"month":            0.01,
		"day_of_week":      -0.02,
		"hour":             0.005,
	}
	for i := 1; i <= models.ClusterCount; i++ {
		weights[fmt.Sprintf("distance_to_cluster_%d", i)] = -0.03
	}
	for _, t := range topics {
		weights["topic="+t] = 0.1
	}
	for _, o := range osNames {
		weights["os="+o] = 0.05
	}

	artifact := struct {
		Bias    float64            `json:"bias"`
		Weights map[string]float64 `json:"weights"`
	}{
		Bias:    -0.5,
		Weights: weights,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

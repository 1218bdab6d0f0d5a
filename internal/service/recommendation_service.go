package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-recsys/internal/dto"
	"content-recsys/internal/features"
	"content-recsys/internal/ranker"
	"content-recsys/internal/store"

	"go.uber.org/zap"
)

// ErrUserNotFound is returned when the requested user id is absent from the
// user index. No scoring happens in that case.
var ErrUserNotFound = errors.New("user not found")

type RecommendationService struct {
	store  *store.Store
	ranker *ranker.Ranker
	logger *zap.Logger
}

func NewRecommendationService(st *store.Store, rk *ranker.Ranker, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		store:  st,
		ranker: rk,
		logger: logger,
	}
}

// Recommend returns up to limit posts the user has not liked yet, ordered by
// descending predicted engagement probability. An empty result is valid.
func (s *RecommendationService) Recommend(ctx context.Context, userID int64, at time.Time, limit int) ([]dto.PostResponse, error) {
	user, ok := s.store.User(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	candidates, err := features.Assemble(user, at, s.store.Candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble candidates: %w", err)
	}

	ranked, err := s.ranker.Rank(candidates, s.store.LikedPosts(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	responses := make([]dto.PostResponse, 0, len(ranked))
	for _, rec := range ranked {
		post, ok := s.store.Posts[rec.PostID]
		if !ok {
			return nil, fmt.Errorf("post %d has features but no catalog row", rec.PostID)
		}
		responses = append(responses, dto.PostResponse{
			ID:    post.ID,
			Text:  post.Text,
			Topic: post.Topic,
		})
	}

	s.logger.Debug("Recommendations computed",
		zap.Int64("user_id", userID),
		zap.Int("limit", limit),
		zap.Int("returned", len(responses)),
	)

	return responses, nil
}

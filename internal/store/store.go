package store

import (
	"context"
	"time"

	"content-recsys/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PostSource supplies the static post datasets.
type PostSource interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostFeatures(ctx context.Context) ([]models.PostFeatures, error)
}

// UserSource supplies user attributes and the historical like aggregate.
type UserSource interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CountHistoricalLikes(ctx context.Context, cutoff time.Time) (map[int64]int, error)
}

// FeedSource streams the liked (user, post) pairs.
type FeedSource interface {
	ForEachLikedPair(ctx context.Context, fn func(userID, postID int64) error) error
}

// Store is the process-wide reference snapshot. It is built once at startup
// and never mutated afterwards, so request handlers share it without locking.
type Store struct {
	Posts      map[int64]models.Post
	Candidates []models.PostFeatures
	Users      map[int64]models.User
	Likes      map[int64]map[int64]struct{}
}

// Load fetches the five reference datasets concurrently and indexes them.
// Any fetch error aborts the whole load; the service must not start with
// partial reference data.
func Load(ctx context.Context, posts PostSource, users UserSource, feed FeedSource, cutoff time.Time, logger *zap.Logger) (*Store, error) {
	var (
		postRows    []models.Post
		featureRows []models.PostFeatures
		userRows    []models.User
		likeCounts  map[int64]int
		likes       = make(map[int64]map[int64]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Loading posts")
		var err error
		postRows, err = posts.ListPosts(gctx)
		return err
	})
	g.Go(func() error {
		logger.Info("Loading post features")
		var err error
		featureRows, err = posts.ListPostFeatures(gctx)
		return err
	})
	g.Go(func() error {
		logger.Info("Loading users")
		var err error
		userRows, err = users.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		logger.Info("Loading historical like counts")
		var err error
		likeCounts, err = users.CountHistoricalLikes(gctx, cutoff)
		return err
	})
	g.Go(func() error {
		logger.Info("Loading like pairs")
		return feed.ForEachLikedPair(gctx, func(userID, postID int64) error {
			liked, ok := likes[userID]
			if !ok {
				liked = make(map[int64]struct{})
				likes[userID] = liked
			}
			liked[postID] = struct{}{}
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Store{
		Posts:      make(map[int64]models.Post, len(postRows)),
		Candidates: featureRows,
		Users:      make(map[int64]models.User, len(userRows)),
		Likes:      likes,
	}
	for _, p := range postRows {
		s.Posts[p.ID] = p
	}
	for _, u := range userRows {
		u.TotalLikes = likeCounts[u.ID]
		s.Users[u.ID] = u
	}

	logger.Info("Reference data loaded",
		zap.Int("posts", len(s.Posts)),
		zap.Int("candidates", len(s.Candidates)),
		zap.Int("users", len(s.Users)),
		zap.Int("users_with_likes", len(s.Likes)),
	)

	return s, nil
}

// User returns the user's attributes, reporting whether the id is known.
func (s *Store) User(id int64) (models.User, bool) {
	u, ok := s.Users[id]
	return u, ok
}

// LikedPosts returns the user's exclusion set. Nil for users with no likes.
func (s *Store) LikedPosts(userID int64) map[int64]struct{} {
	return s.Likes[userID]
}

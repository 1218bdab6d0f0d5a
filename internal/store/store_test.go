package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"content-recsys/internal/models"

	"go.uber.org/zap"
)

type mockPostSource struct {
	posts    []models.Post
	features []models.PostFeatures
	err      error
}

func (m *mockPostSource) ListPosts(ctx context.Context) ([]models.Post, error) {
	return m.posts, m.err
}

func (m *mockPostSource) ListPostFeatures(ctx context.Context) ([]models.PostFeatures, error) {
	return m.features, m.err
}

type mockUserSource struct {
	users  []models.User
	counts map[int64]int
	err    error
}

func (m *mockUserSource) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, m.err
}

func (m *mockUserSource) CountHistoricalLikes(ctx context.Context, cutoff time.Time) (map[int64]int, error) {
	return m.counts, m.err
}

type mockFeedSource struct {
	pairs [][2]int64
	err   error
}

func (m *mockFeedSource) ForEachLikedPair(ctx context.Context, fn func(userID, postID int64) error) error {
	if m.err != nil {
		return m.err
	}
	for _, p := range m.pairs {
		if err := fn(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func TestLoadIndexesReferenceData(t *testing.T) {
	posts := &mockPostSource{
		posts: []models.Post{
			{ID: 1, Text: "one", Topic: "tech"},
			{ID: 2, Text: "two", Topic: "sport"},
		},
		features: []models.PostFeatures{{PostID: 1}, {PostID: 2}},
	}
	users := &mockUserSource{
		users:  []models.User{{ID: 10}, {ID: 11}},
		counts: map[int64]int{10: 7},
	}
	feed := &mockFeedSource{pairs: [][2]int64{{10, 1}, {10, 2}, {11, 2}}}

	s, err := Load(context.Background(), posts, users, feed, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := s.Posts[2].Text; got != "two" {
		t.Errorf("post 2 text = %q", got)
	}
	if len(s.Candidates) != 2 {
		t.Errorf("candidates = %d, want 2", len(s.Candidates))
	}

	// Like counts are joined onto users; absent counts coalesce to zero.
	if u, _ := s.User(10); u.TotalLikes != 7 {
		t.Errorf("user 10 total likes = %d, want 7", u.TotalLikes)
	}
	if u, _ := s.User(11); u.TotalLikes != 0 {
		t.Errorf("user 11 total likes = %d, want 0", u.TotalLikes)
	}
	if _, ok := s.User(99); ok {
		t.Error("unknown user reported as present")
	}

	liked := s.LikedPosts(10)
	if len(liked) != 2 {
		t.Errorf("user 10 liked = %v", liked)
	}
	if s.LikedPosts(12) != nil {
		t.Error("user with no likes should have a nil exclusion set")
	}
}

func TestLoadFailsOnAnyQueryError(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		posts *mockPostSource
		users *mockUserSource
		feed  *mockFeedSource
	}{
		{
			name:  "post query fails",
			posts: &mockPostSource{err: boom},
			users: &mockUserSource{},
			feed:  &mockFeedSource{},
		},
		{
			name:  "user query fails",
			posts: &mockPostSource{},
			users: &mockUserSource{err: boom},
			feed:  &mockFeedSource{},
		},
		{
			name:  "feed stream fails",
			posts: &mockPostSource{},
			users: &mockUserSource{},
			feed:  &mockFeedSource{err: boom},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(context.Background(), tt.posts, tt.users, tt.feed, time.Now(), zap.NewNop()); !errors.Is(err, boom) {
				t.Fatalf("expected load to fail with source error, got %v", err)
			}
		})
	}
}

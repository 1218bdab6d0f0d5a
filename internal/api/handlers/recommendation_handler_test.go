package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"content-recsys/internal/api"
	"content-recsys/internal/api/handlers"
	"content-recsys/internal/dto"
	"content-recsys/internal/models"
	"content-recsys/internal/ranker"
	"content-recsys/internal/service"
	"content-recsys/internal/store"
	"content-recsys/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type stubClassifier struct{}

func (stubClassifier) PredictProba(f map[string]float64) (float64, error) {
	return f["distance_to_cluster_1"], nil
}

// newTestApp serves a ten-post catalog where post i scores i/100 and user 1
// has liked the given posts.
func newTestApp(likedPosts ...int64) *fiber.App {
	st := &store.Store{
		Posts: make(map[int64]models.Post),
		Users: map[int64]models.User{
			1: {ID: 1, Country: "Russia", City: "Moscow", OS: "iOS", Source: "ads"},
		},
		Likes: map[int64]map[int64]struct{}{1: {}},
	}
	for i := int64(1); i <= 10; i++ {
		st.Posts[i] = models.Post{ID: i, Text: fmt.Sprintf("post %d", i), Topic: "tech"}
		pf := models.PostFeatures{PostID: i, Topic: "tech"}
		pf.ClusterDistances[0] = float64(i) / 100
		st.Candidates = append(st.Candidates, pf)
	}
	for _, id := range likedPosts {
		st.Likes[1][id] = struct{}{}
	}

	rk := ranker.NewRanker(stubClassifier{}, zap.NewNop())
	svc := service.NewRecommendationService(st, rk, zap.NewNop())
	return api.SetupRouter(handlers.NewRecommendationHandler(svc, zap.NewNop()), config.ServerConfig{})
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("request %s: %v", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestGetRecommendations(t *testing.T) {
	app := newTestApp(5, 9)

	resp, body := get(t, app, "/post/recommendations/?id=1&time=2022-03-08T10:00:00Z&limit=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var posts []dto.PostResponse
	if err := json.Unmarshal(body, &posts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []int64{10, 8, 7}
	if len(posts) != len(want) {
		t.Fatalf("got %d posts, want %d: %s", len(posts), len(want), body)
	}
	for i, p := range posts {
		if p.ID != want[i] {
			t.Errorf("position %d: post %d, want %d", i, p.ID, want[i])
		}
	}
}

func TestGetRecommendationsDefaultLimit(t *testing.T) {
	app := newTestApp()

	resp, body := get(t, app, "/post/recommendations/?id=1&time=2022-03-08T10:00:00Z")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var posts []dto.PostResponse
	if err := json.Unmarshal(body, &posts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(posts) != 10 {
		t.Errorf("default limit should return 10 posts, got %d", len(posts))
	}
}

func TestGetRecommendationsUserNotFound(t *testing.T) {
	app := newTestApp()

	resp, body := get(t, app, "/post/recommendations/?id=12345&time=2022-03-08T10:00:00Z")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["error"] != "User ID not found" {
		t.Errorf("error message = %q", payload["error"])
	}
}

func TestGetRecommendationsBadRequest(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		url  string
	}{
		{"missing id", "/post/recommendations/?time=2022-03-08T10:00:00Z"},
		{"non-integer id", "/post/recommendations/?id=abc&time=2022-03-08T10:00:00Z"},
		{"missing time", "/post/recommendations/?id=1"},
		{"malformed time", "/post/recommendations/?id=1&time=yesterday"},
		{"negative limit", "/post/recommendations/?id=1&time=2022-03-08T10:00:00Z&limit=-1"},
		{"non-integer limit", "/post/recommendations/?id=1&time=2022-03-08T10:00:00Z&limit=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, app, tt.url)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body = %s", resp.StatusCode, body)
			}
		})
	}
}

func TestGetRecommendationsAcceptedTimeFormats(t *testing.T) {
	app := newTestApp()

	formats := []string{
		"2022-03-08T10:00:00Z",
		"2022-03-08T10:00:00",
		"2022-03-08 10:00:00",
		"2022-03-08",
	}
	for _, f := range formats {
		resp, body := get(t, app, "/post/recommendations/?id=1&limit=1&time="+url.QueryEscape(f))
		if resp.StatusCode != http.StatusOK {
			t.Errorf("time %q: status = %d, body = %s", f, resp.StatusCode, body)
		}
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, _ := get(t, app, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
}

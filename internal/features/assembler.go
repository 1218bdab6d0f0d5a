package features

import (
	"fmt"
	"time"

	"content-recsys/internal/models"
)

// Candidate is one scoring-ready row: a post's static features joined with
// the requesting user's attributes and the request-time derivations, shaped
// to the training schema. Request-scoped, never persisted.
type Candidate struct {
	PostID int64
	Fields map[string]any
}

// Assemble builds one candidate row per catalog post for the given user and
// request time. Pure function of its inputs: the user's static attributes
// are broadcast across every row, and month / ISO day-of-week (0=Monday) /
// hour are derived from the request timestamp.
//
// Exclusion of already-liked posts happens later, in the ranker; the
// candidate universe here is always the whole catalog.
func Assemble(user models.User, at time.Time, candidates []models.PostFeatures) ([]Candidate, error) {
	month := int(at.Month())
	dayOfWeek := (int(at.Weekday()) + 6) % 7
	hour := at.Hour()

	rows := make([]Candidate, 0, len(candidates))
	for _, pf := range candidates {
		raw := map[string]any{
			"gender":           user.Gender,
			"age":              user.Age,
			"country":          user.Country,
			"city":             user.City,
			"exp_group":        user.ExpGroup,
			"os":               user.OS,
			"source":           user.Source,
			"month":            month,
			"day_of_week":      dayOfWeek,
			"hour":             hour,
			"topic":            pf.Topic,
			"text_cluster":     pf.TextCluster,
			"user_total_likes": user.TotalLikes,
		}
		for i, d := range pf.ClusterDistances {
			raw[fmt.Sprintf("distance_to_cluster_%d", i+1)] = d
		}

		fields, err := Project(raw)
		if err != nil {
			return nil, fmt.Errorf("post %d: %w", pf.PostID, err)
		}
		rows = append(rows, Candidate{PostID: pf.PostID, Fields: fields})
	}

	return rows, nil
}

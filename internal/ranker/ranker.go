package ranker

import (
	"fmt"
	"sort"

	"content-recsys/internal/features"

	"go.uber.org/zap"
)

// Scored is a candidate post with its predicted engagement probability.
type Scored struct {
	PostID      int64
	Probability float64
}

type Ranker struct {
	model  Classifier
	logger *zap.Logger
}

func NewRanker(model Classifier, logger *zap.Logger) *Ranker {
	return &Ranker{
		model:  model,
		logger: logger,
	}
}

// Rank scores every candidate, drops the ones in the liked set and returns
// the top limit posts, highest probability first.
//
// Ordering: stable ascending sort by probability, keep the last limit
// entries, then reverse. Under that scheme
// equal-probability candidates nearer the end of the pre-sort order win.
// Fewer eligible candidates than limit returns them all; limit <= 0 returns
// an empty slice.
func (r *Ranker) Rank(candidates []features.Candidate, liked map[int64]struct{}, limit int) ([]Scored, error) {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		encoded, err := features.Encode(c.Fields)
		if err != nil {
			return nil, fmt.Errorf("post %d: %w", c.PostID, err)
		}
		p, err := r.model.PredictProba(encoded)
		if err != nil {
			return nil, fmt.Errorf("post %d: %w", c.PostID, err)
		}
		scored = append(scored, Scored{PostID: c.PostID, Probability: p})
	}

	eligible := scored[:0]
	for _, s := range scored {
		if _, skip := liked[s.PostID]; !skip {
			eligible = append(eligible, s)
		}
	}
	scored = eligible

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Probability < scored[j].Probability
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(scored) {
		scored = scored[len(scored)-limit:]
	}

	// highest probability first
	for i, j := 0, len(scored)-1; i < j; i, j = i+1, j-1 {
		scored[i], scored[j] = scored[j], scored[i]
	}

	return scored, nil
}

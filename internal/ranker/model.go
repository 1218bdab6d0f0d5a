package ranker

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Classifier scores one encoded feature row with the probability of a
// positive engagement, in [0, 1].
type Classifier interface {
	PredictProba(features map[string]float64) (float64, error)
}

// LogisticModel is a serialized logistic regression: a bias plus a weight
// per feature key (one-hot categorical keys included). It is the native
// artifact format this service deserializes at startup.
type LogisticModel struct {
	Bias    float64
	Weights map[string]float64
}

// LoadModel deserializes a classifier from its artifact file. A missing or
// corrupt artifact is fatal at startup.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var raw struct {
		Bias    float64            `json:"bias"`
		Weights map[string]float64 `json:"weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if raw.Weights == nil {
		return nil, fmt.Errorf("model artifact has no weights")
	}

	return &LogisticModel{Bias: raw.Bias, Weights: raw.Weights}, nil
}

// PredictProba computes sigmoid(bias + sum(w_i * x_i)). Features without a
// learned weight contribute nothing. Summation runs in sorted key order so
// identical rows always produce bit-identical scores.
func (m *LogisticModel) PredictProba(features map[string]float64) (float64, error) {
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	z := m.Bias
	for _, k := range keys {
		if w, ok := m.Weights[k]; ok {
			z += w * features[k]
		}
	}

	return 1 / (1 + math.Exp(-z)), nil
}

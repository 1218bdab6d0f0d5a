package features

import (
	"errors"
	"fmt"

	"content-recsys/internal/models"
)

// Kind distinguishes how a column is fed to the classifier.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

// Column is one named, typed entry of the training schema.
type Column struct {
	Name string
	Kind Kind
}

// ErrMissingColumn marks an assembled row that violates the training schema.
// It is a contract violation, not a user error.
var ErrMissingColumn = errors.New("feature column missing")

// trainingColumns is the exact, ordered column contract the classifier was
// trained on. Assembled rows are projected through it; anything else an
// assembly step produces is dropped, anything absent is an error.
var trainingColumns = buildTrainingColumns()

func buildTrainingColumns() []Column {
	cols := []Column{
		{"gender", Numeric},
		{"age", Numeric},
		{"country", Categorical},
		{"city", Categorical},
		{"exp_group", Numeric},
		{"os", Categorical},
		{"source", Categorical},
		{"month", Numeric},
		{"day_of_week", Numeric},
		{"hour", Numeric},
		{"topic", Categorical},
		{"text_cluster", Numeric},
	}
	for i := 1; i <= models.ClusterCount; i++ {
		cols = append(cols, Column{fmt.Sprintf("distance_to_cluster_%d", i), Numeric})
	}
	return append(cols, Column{"user_total_likes", Numeric})
}

// TrainingColumns returns the schema in training order.
func TrainingColumns() []Column {
	return trainingColumns
}

// Project reorders raw assembled fields into the training schema, dropping
// extras. A schema column absent from raw is a contract violation.
func Project(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(trainingColumns))
	for _, col := range trainingColumns {
		v, ok := raw[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col.Name)
		}
		out[col.Name] = v
	}
	return out, nil
}

// Encode flattens a projected row into the numeric feature map the
// classifier consumes. Numeric columns pass through; categorical columns
// become one-hot "name=value" entries.
func Encode(fields map[string]any) (map[string]float64, error) {
	out := make(map[string]float64, len(trainingColumns))
	for _, col := range trainingColumns {
		v, ok := fields[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col.Name)
		}

		switch col.Kind {
		case Numeric:
			f, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			out[col.Name] = f
		case Categorical:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("column %s: expected string, got %T", col.Name, v)
			}
			out[col.Name+"="+s] = 1
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

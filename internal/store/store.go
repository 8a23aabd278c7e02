// Package store persists evaluation records: a scored company, the weight
// configuration used, and the resulting weighted breakdown.
package store

import (
	"context"
	"time"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// Evaluation is one persisted scoring run for a single company.
type Evaluation struct {
	ID         string                 `json:"id"`
	Company    model.Company          `json:"company"`
	Scores     model.PillarScores     `json:"scores"`
	Weights    model.WeightConfig     `json:"weights"`
	Result     model.WeightedScores   `json:"result"`
	Validation model.ValidationResult `json:"validation"`
	ConfigHash string                 `json:"config_hash"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Filter specifies criteria for listing evaluations.
type Filter struct {
	Company string `json:"company,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Store defines the persistence interface for evaluation records.
type Store interface {
	SaveEvaluation(ctx context.Context, eval *Evaluation) error
	GetEvaluation(ctx context.Context, id string) (*Evaluation, error)
	ListEvaluations(ctx context.Context, filter Filter) ([]Evaluation, error)

	Migrate(ctx context.Context) error
	Close() error
}

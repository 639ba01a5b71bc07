// ABOUTME: Record processor that scores, prices, and persists one server record
// ABOUTME: Write-through to the store keyed by server name; store errors propagate

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/markalston/migration-assessor/models"
)

// AssessmentRecorder observes completed assessments, e.g. for metrics.
type AssessmentRecorder interface {
	RecordAssessment(strategy models.Strategy)
}

// Processor turns server records into persisted assessments.
type Processor struct {
	store    Store
	recorder AssessmentRecorder
}

// NewProcessor creates a processor writing to store. recorder may be nil.
func NewProcessor(store Store, recorder AssessmentRecorder) *Processor {
	return &Processor{store: store, recorder: recorder}
}

// Assessment is one scored record: the item to persist, the caller-facing
// summary, and the score vector behind both.
type Assessment struct {
	Item    models.MigrationAssessment
	Summary models.AssessmentSummary
	Scores  models.StrategyScores
}

// Assess scores a record and builds its persisted form without writing it.
func (p *Processor) Assess(record models.ServerRecord) (Assessment, error) {
	record = record.WithDefaults()

	primary, scores := models.Score(record)
	cost := models.EstimateCost(scores)

	item, err := models.NewMigrationAssessment(record, primary, scores, cost)
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{
		Item: item,
		Summary: models.AssessmentSummary{
			ServerName:      item.ServerName,
			PrimaryStrategy: primary,
			EstimatedCost:   models.Cents{Dec: cost},
		},
		Scores: scores,
	}, nil
}

// Process assesses a record and upserts it into the store.
func (p *Processor) Process(ctx context.Context, record models.ServerRecord) (models.AssessmentSummary, error) {
	a, err := p.Assess(record)
	if err != nil {
		return models.AssessmentSummary{}, err
	}
	item, summary := a.Item, a.Summary

	if err := p.store.PutItem(ctx, item); err != nil {
		return models.AssessmentSummary{}, fmt.Errorf("failed to store assessment for %q: %w", item.ServerName, err)
	}

	slog.Info("Server assessed",
		"server_name", item.ServerName,
		"primary_strategy", summary.PrimaryStrategy,
		"strategy_scores", item.StrategyScores,
		"estimated_cost", item.Cost,
	)
	if p.recorder != nil {
		p.recorder.RecordAssessment(summary.PrimaryStrategy)
	}
	return summary, nil
}

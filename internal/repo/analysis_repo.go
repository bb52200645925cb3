// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// MatchAnalysis model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an analysis is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlipka/go-matchday-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetAnalysis fetches the analysis for (fixtureID, language). If the record
// does not exist, it returns ErrNotFound. On other DB errors, the raw error
// is returned.
func GetAnalysis(ctx context.Context, db *gorm.DB, fixtureID, language string) (*domain.MatchAnalysis, error) {
	var a domain.MatchAnalysis
	err := db.WithContext(ctx).
		Where("fixture_id = ? AND language = ?", fixtureID, language).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAnalysis creates or overwrites the analysis for (fixtureID,
// language). The unique pair index makes the write race-safe: concurrent
// upserts for the same pair converge on one row, last writer wins on the
// text column.
func UpsertAnalysis(ctx context.Context, db *gorm.DB, fixtureID, language, analysis string) error {
	rec := domain.MatchAnalysis{
		FixtureID: fixtureID,
		Language:  language,
		Analysis:  analysis,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fixture_id"}, {Name: "language"}},
			DoUpdates: clause.AssignmentColumns([]string{"analysis", "updated_at"}),
		}).
		Create(&rec).Error
}

// CountAnalyses returns the total number of stored analyses. The health
// endpoint reports it as a database reachability signal; not on any hot path.
func CountAnalyses(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.MatchAnalysis{}).Count(&total).Error
	return total, err
}

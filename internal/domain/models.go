// Package domain defines the persistence models and core value types for the
// match-analysis backend. Persistence models are mapped with GORM.
package domain

import (
	"time"
)

// MatchAnalysis is a generated analysis text for one fixture in one language.
// The pair (FixtureID, Language) is unique: once an analysis exists for a
// fixture+language it is served from the database and never regenerated
// (live matches are the exception; they are never persisted at all).
//
// Fields:
//   - ID: auto-increment primary key.
//   - FixtureID: external fixture identifier, stored as a trimmed string so
//     that numeric and string callers end up on the same row.
//   - Language: "pl" or "en".
//   - Analysis: the generated text payload.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type MatchAnalysis struct {
	ID        uint      `json:"-"          gorm:"primaryKey"`
	FixtureID string    `json:"fixture_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_fixture_language,priority:1"`
	Language  string    `json:"language"   gorm:"type:varchar(8);not null;uniqueIndex:ux_fixture_language,priority:2;check:language IN ('pl','en')"`
	Analysis  string    `json:"analysis"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for MatchAnalysis.
func (MatchAnalysis) TableName() string { return "match_analyses" }

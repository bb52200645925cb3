// Package services – FixtureService
//
// Read-through cache over the football data provider. Fixture lists and
// prediction lists for a calendar day are cached until the end of that day
// in the configured timezone (clamped, see the kv package); once the day is
// over the data is historical and a fresh fetch after expiry is cheap.
// Live fixtures are never cached: the payload changes with every score.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/kv"
)

// FixtureService serves fixture and prediction listings, caching per-day
// responses in the key-value store.
type FixtureService struct {
	Provider clients.FootballProvider
	Cache    kv.Store
	Loc      *time.Location
	Now      func() time.Time
}

// NewFixtureService constructs a FixtureService with a real clock.
func NewFixtureService(p clients.FootballProvider, cache kv.Store, loc *time.Location) *FixtureService {
	return &FixtureService{Provider: p, Cache: cache, Loc: loc, Now: time.Now}
}

// FixturesByDate returns the provider's fixture payload for the given day
// (YYYY-MM-DD), cached until the end of that day.
func (s *FixtureService) FixturesByDate(ctx context.Context, date string) (json.RawMessage, error) {
	tr := otel.Tracer("services/FixtureService")
	ctx, span := tr.Start(ctx, "FixturesByDate",
		trace.WithAttributes(attribute.String("date", date)))
	defer span.End()

	day, err := parseDay(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	key := "fixtures:" + date
	if cached, ok := s.Cache.Get(ctx, key); ok {
		return json.RawMessage(cached), nil
	}

	raw, err := s.Provider.FixturesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	s.cacheDay(ctx, key, raw, day)
	return raw, nil
}

// LiveFixtures returns the provider's current live payload. No caching.
func (s *FixtureService) LiveFixtures(ctx context.Context) (json.RawMessage, error) {
	tr := otel.Tracer("services/FixtureService")
	ctx, span := tr.Start(ctx, "LiveFixtures")
	defer span.End()

	return s.Provider.LiveFixtures(ctx)
}

// PredictionsByDate returns match predictions for the given day
// (YYYY-MM-DD), cached until the end of that day.
func (s *FixtureService) PredictionsByDate(ctx context.Context, date string) ([]clients.Prediction, error) {
	tr := otel.Tracer("services/FixtureService")
	ctx, span := tr.Start(ctx, "PredictionsByDate",
		trace.WithAttributes(attribute.String("date", date)))
	defer span.End()

	day, err := parseDay(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	key := "predictions:" + date
	var preds []clients.Prediction
	if kv.GetJSON(ctx, s.Cache, key, &preds) {
		return preds, nil
	}

	preds, err = s.Provider.PredictionsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(preds); err == nil {
		s.cacheDay(ctx, key, json.RawMessage(b), day)
	}
	return preds, nil
}

func (s *FixtureService) cacheDay(ctx context.Context, key string, raw json.RawMessage, day time.Time) {
	ttl := kv.TTLUntilEndOfDay(day, s.Now(), s.Loc)
	if !s.Cache.SetWithTTL(ctx, key, string(raw), ttl) {
		log.Warn().Str("key", key).Msg("fixture cache write failed")
	}
}

// parseDay validates a YYYY-MM-DD string and returns it as a date in the
// local calendar.
func parseDay(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}

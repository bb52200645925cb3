package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/kv"
)

type fakeProvider struct {
	fixtures    json.RawMessage
	live        json.RawMessage
	predictions []clients.Prediction
	err         error

	fixtureCalls    int
	liveCalls       int
	predictionCalls int
}

func (p *fakeProvider) FixturesByDate(_ context.Context, _ string) (json.RawMessage, error) {
	p.fixtureCalls++
	return p.fixtures, p.err
}

func (p *fakeProvider) LiveFixtures(_ context.Context) (json.RawMessage, error) {
	p.liveCalls++
	return p.live, p.err
}

func (p *fakeProvider) PredictionsByDate(_ context.Context, _ string) ([]clients.Prediction, error) {
	p.predictionCalls++
	return p.predictions, p.err
}

func newFixtureService(t *testing.T, p clients.FootballProvider) (*FixtureService, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	store.Now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	svc := NewFixtureService(p, store, time.UTC)
	svc.Now = store.Now
	return svc, store
}

func TestFixturesByDate_CachesUntilEndOfDay(t *testing.T) {
	p := &fakeProvider{fixtures: json.RawMessage(`{"response":[{"fixture":{"id":1}}]}`)}
	svc, store := newFixtureService(t, p)
	ctx := context.Background()

	first, err := svc.FixturesByDate(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.FixturesByDate(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("cached payload differs")
	}
	if p.fixtureCalls != 1 {
		t.Fatalf("expected one provider call, got %d", p.fixtureCalls)
	}

	// Queried at noon, the entry must live exactly until local midnight.
	ttl, ok := store.TTL("fixtures:2025-06-01")
	if !ok {
		t.Fatalf("cache entry missing")
	}
	if ttl != 12*time.Hour {
		t.Fatalf("expected 12h ttl, got %v", ttl)
	}
}

func TestFixturesByDate_PastDayClampedToMinimum(t *testing.T) {
	p := &fakeProvider{fixtures: json.RawMessage(`{"response":[]}`)}
	svc, store := newFixtureService(t, p)

	if _, err := svc.FixturesByDate(context.Background(), "2025-05-20"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ttl, ok := store.TTL("fixtures:2025-05-20")
	if !ok {
		t.Fatalf("cache entry missing")
	}
	if ttl != kv.MinCacheTTL {
		t.Fatalf("expected %v ttl for a past day, got %v", kv.MinCacheTTL, ttl)
	}
}

func TestFixturesByDate_InvalidDate(t *testing.T) {
	svc, _ := newFixtureService(t, &fakeProvider{})

	for _, date := range []string{"", "2025-6-1", "01-06-2025", "yesterday"} {
		if _, err := svc.FixturesByDate(context.Background(), date); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("date %q: expected ErrInvalidDate, got %v", date, err)
		}
	}
}

func TestFixturesByDate_ProviderErrorNotCached(t *testing.T) {
	p := &fakeProvider{err: errors.New("upstream 500")}
	svc, store := newFixtureService(t, p)

	if _, err := svc.FixturesByDate(context.Background(), "2025-06-01"); err == nil {
		t.Fatalf("expected provider error")
	}
	if _, ok := store.Get(context.Background(), "fixtures:2025-06-01"); ok {
		t.Fatalf("failed fetch must not be cached")
	}
}

func TestLiveFixtures_NeverCached(t *testing.T) {
	p := &fakeProvider{live: json.RawMessage(`{"response":[{"fixture":{"id":7}}]}`)}
	svc, _ := newFixtureService(t, p)
	ctx := context.Background()

	if _, err := svc.LiveFixtures(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.LiveFixtures(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.liveCalls != 2 {
		t.Fatalf("live fixtures must hit the provider every time, calls=%d", p.liveCalls)
	}
}

func TestPredictionsByDate_CachesDecodedList(t *testing.T) {
	p := &fakeProvider{predictions: []clients.Prediction{
		{ID: json.Number("1001"), HomeTeam: "Roma", AwayTeam: "Lazio", Prediction: "Roma to win or draw"},
	}}
	svc, _ := newFixtureService(t, p)
	ctx := context.Background()

	first, err := svc.PredictionsByDate(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.PredictionsByDate(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.predictionCalls != 1 {
		t.Fatalf("expected one provider call, got %d", p.predictionCalls)
	}
	if len(second) != 1 || second[0].HomeTeam != first[0].HomeTeam {
		t.Fatalf("cached predictions differ: %+v vs %+v", first, second)
	}
}

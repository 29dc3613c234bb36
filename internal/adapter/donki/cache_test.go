package donki

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls  int
	events []domain.SpaceWeatherEvent
	err    error
}

func (s *stubSource) FetchEvents(_ context.Context, _ domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	s.calls++
	return s.events, s.err
}

func windowFrom(day int) domain.DateRange {
	return domain.DateRange{
		Start: time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, day+5, 0, 0, 0, 0, time.UTC),
	}
}

func TestCachedClientHit(t *testing.T) {
	stub := &stubSource{events: []domain.SpaceWeatherEvent{{ID: "flare-1", EventType: domain.EventFlare}}}
	cached := NewCachedClient(stub, 10)

	first, err := cached.FetchEvents(context.Background(), windowFrom(1))
	require.NoError(t, err)
	second, err := cached.FetchEvents(context.Background(), windowFrom(1))
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls, "second fetch should be served from cache")
	assert.Equal(t, first, second)
}

func TestCachedClientDistinctWindows(t *testing.T) {
	stub := &stubSource{events: []domain.SpaceWeatherEvent{{ID: "flare-1"}}}
	cached := NewCachedClient(stub, 10)

	_, err := cached.FetchEvents(context.Background(), windowFrom(1))
	require.NoError(t, err)
	_, err = cached.FetchEvents(context.Background(), windowFrom(2))
	require.NoError(t, err)

	assert.Equal(t, 2, stub.calls)
}

func TestCachedClientDoesNotCacheEmpty(t *testing.T) {
	stub := &stubSource{}
	cached := NewCachedClient(stub, 10)

	_, err := cached.FetchEvents(context.Background(), windowFrom(1))
	require.NoError(t, err)
	_, err = cached.FetchEvents(context.Background(), windowFrom(1))
	require.NoError(t, err)

	assert.Equal(t, 2, stub.calls, "quiet ranges are re-checked for late notifications")
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	stub := &stubSource{err: errors.New("boom")}
	cached := NewCachedClient(stub, 10)

	_, err := cached.FetchEvents(context.Background(), windowFrom(1))
	require.Error(t, err)

	stub.err = nil
	stub.events = []domain.SpaceWeatherEvent{{ID: "flare-1"}}
	events, err := cached.FetchEvents(context.Background(), windowFrom(1))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLRUCacheEviction(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", []domain.SpaceWeatherEvent{{ID: "a"}})
	cache.put("b", []domain.SpaceWeatherEvent{{ID: "b"}})

	// Touch "a" so "b" becomes least recently used.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", []domain.SpaceWeatherEvent{{ID: "c"}})

	_, ok = cache.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
}

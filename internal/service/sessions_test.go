package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/hoopswrapped/internal/metrics"
	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, m *metrics.Metrics) (*SessionStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)}
	store := NewSessionStore(ttl, m)
	store.now = clock.now
	return store, clock
}

func TestSessionStore_AddGetRemove(t *testing.T) {
	store, _ := newTestStore(time.Minute, nil)
	team := &models.Team{ID: 1, Name: "Splash"}

	s := store.Add(team, nil)
	require.NotEmpty(t, s.ID)

	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	assert.True(t, store.Remove(s.ID))
	assert.False(t, store.Remove(s.ID))

	_, err = store.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_IDsAreUnique(t *testing.T) {
	store, _ := newTestStore(time.Minute, nil)
	a := store.Add(&models.Team{ID: 1}, nil)
	b := store.Add(&models.Team{ID: 1}, nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_ExpiresIdleSessions(t *testing.T) {
	store, clock := newTestStore(10*time.Minute, nil)
	s := store.Add(&models.Team{ID: 1}, nil)

	clock.advance(9 * time.Minute)
	_, err := store.Get(s.ID)
	require.NoError(t, err, "use refreshes the idle timer")

	clock.advance(9 * time.Minute)
	_, err = store.Get(s.ID)
	require.NoError(t, err)

	clock.advance(11 * time.Minute)
	_, err = store.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, store.Len())
}

func TestSessionStore_Sweep(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	store, clock := newTestStore(time.Minute, m)

	stale := store.Add(&models.Team{ID: 1}, nil)
	clock.advance(2 * time.Minute)
	fresh := store.Add(&models.Team{ID: 2}, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OpenSessions))

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenSessions))

	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

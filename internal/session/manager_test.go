package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Create("users", nil)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, "users", s.Screen)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestManagerGetUnknownSession(t *testing.T) {
	m := NewManager(time.Hour)

	_, err := m.Get("nope")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManagerRemove(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create("users", nil)

	m.Remove(s.ID)

	_, err := m.Get(s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManagerSweepEvictsIdleSessions(t *testing.T) {
	m := NewManager(time.Millisecond)
	m.Create("users", nil)
	m.Create("event-records", nil)

	time.Sleep(5 * time.Millisecond)
	evicted := m.Sweep(time.Now())

	assert.Equal(t, 2, evicted)
	assert.Equal(t, 0, m.Len())
}

func TestManagerGetRefreshesIdleTimer(t *testing.T) {
	m := NewManager(50 * time.Millisecond)
	s := m.Create("users", nil)

	time.Sleep(30 * time.Millisecond)
	_, err := m.Get(s.ID)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, m.Sweep(time.Now()), "recently touched session survives")
}

func TestSessionSuggestionPanel(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create("users", nil)

	list := []domain.Suggestion{
		{Field: "name", Value: "Dana"},
		{Field: "email", Value: "dana@x.com"},
	}
	s.SetSuggestions(list)

	_, ok := s.Highlighted()
	assert.False(t, ok, "recomputed panel starts unhighlighted")

	assert.Equal(t, 0, s.CursorDown())
	picked, ok := s.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "Dana", picked.Value)

	s.ClearSuggestions()
	_, ok = s.Highlighted()
	assert.False(t, ok)
	assert.Equal(t, -1, s.CursorDown(), "closed panel has nothing to highlight")
}

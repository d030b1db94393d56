package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	a := r.Start()
	b := r.Start()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, r.Len())

	got, err := r.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// a is touched, b is left idle past the TTL.
	now = now.Add(40 * time.Minute)
	_, err = r.Get(a.ID)
	require.NoError(t, err)
	now = now.Add(40 * time.Minute)

	_, err = r.Get(b.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(a.ID)
	assert.NoError(t, err)

	r.Delete(a.ID)
	assert.Equal(t, 0, r.Len())
}

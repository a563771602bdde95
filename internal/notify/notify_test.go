package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCenter(ttl time.Duration) (*Center, *time.Time) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewCenter(ttl)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestPushAndExpire(t *testing.T) {
	c, now := newTestCenter(3 * time.Second)

	c.Success("Updated")
	got, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, KindSuccess, got.Kind)
	assert.Equal(t, "Updated", got.Text)

	*now = now.Add(2999 * time.Millisecond)
	_, ok = c.Current()
	assert.True(t, ok)

	*now = now.Add(time.Millisecond)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestNewerToastReplaces(t *testing.T) {
	c, _ := newTestCenter(time.Second)
	first := c.Error("boom")
	second := c.Success("Deleted")
	assert.Greater(t, second.ID, first.ID)

	c.Dismiss(first.ID)
	got, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Deleted", got.Text)

	c.Dismiss(second.ID)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewCenter(0).TTL())
	assert.Equal(t, 3500*time.Millisecond, NewCenter(3500*time.Millisecond).TTL())
}

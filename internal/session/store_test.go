package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pappu-dcbot-go/internal/models"
)

func TestGetReturnsFreshEntry(t *testing.T) {
	store := NewStore(0)
	store.Set("u1", "daru", "daru suggest karo", []string{"Old Monk", "Magic Moments"})

	entry, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "daru", entry.LastSubject)
	assert.Equal(t, "daru suggest karo", entry.LastQuery)
	assert.Equal(t, []string{"Old Monk", "Magic Moments"}, entry.Items)
}

func TestGetExpiresAfterTTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(DefaultTTL)
	store.now = func() time.Time { return now }

	store.Set("u1", "phone", "best phone under 20k", nil)

	now = now.Add(DefaultTTL - time.Minute)
	_, ok := store.Get("u1")
	assert.True(t, ok, "entry inside the TTL is still usable")

	now = now.Add(2 * time.Minute)
	_, ok = store.Get("u1")
	assert.False(t, ok, "entry past the TTL is gone")
}

func TestGetPurgesOtherUsersExpiredEntries(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(time.Hour)
	store.now = func() time.Time { return now }

	store.Set("stale", "daru", "old query", nil)
	now = now.Add(2 * time.Hour)
	store.Set("fresh", "phone", "new query", nil)

	// Reading any user sweeps the whole map.
	_, ok := store.Get("fresh")
	require.True(t, ok)
	assert.NotContains(t, store.Snapshot(), "stale")
}

func TestSetDeduplicatesAndTruncatesItems(t *testing.T) {
	store := NewStore(0)

	items := []string{"Old Monk", "old monk", "  ", "Magic Moments"}
	for i := 0; i < 12; i++ {
		items = append(items, fmt.Sprintf("Brand %d", i))
	}
	store.Set("u1", "daru", "daru list", items)

	entry, ok := store.Get("u1")
	require.True(t, ok)
	assert.Len(t, entry.Items, MaxItems)
	assert.Equal(t, "Old Monk", entry.Items[0])
	assert.Equal(t, "Magic Moments", entry.Items[1], "case-insensitive duplicate and blanks dropped")
}

func TestSetOverwritesPriorEntry(t *testing.T) {
	store := NewStore(0)
	store.Set("u1", "daru", "daru suggest karo", []string{"Old Monk"})
	store.Set("u1", "phone", "phone suggest karo", []string{"Pixel"})

	entry, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "phone", entry.LastSubject)
	assert.Equal(t, []string{"Pixel"}, entry.Items)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(time.Hour)
	store.now = func() time.Time { return now }
	store.Set("u1", "movie", "movie suggest karo", []string{"Dangal"})

	snapshot := store.Snapshot()

	restored := NewStore(time.Hour)
	restored.now = func() time.Time { return now }
	restored.Restore(snapshot)

	entry, ok := restored.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "movie", entry.LastSubject)

	// An already-stale snapshot entry never resurfaces.
	snapshot["u2"] = models.SessionEntry{
		LastSubject: "daru",
		Timestamp:   now.Add(-2 * time.Hour).Unix(),
	}
	restored.Restore(snapshot)
	_, ok = restored.Get("u2")
	assert.False(t, ok)
}

func TestResetDropsEverything(t *testing.T) {
	store := NewStore(0)
	store.Set("u1", "daru", "q", nil)
	store.Set("u2", "phone", "q", nil)

	store.Reset()

	assert.Empty(t, store.Snapshot())
}

package jsonfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestStore_MissingFilesAreEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	users, err := store.ListUsers()
	assert.NoError(t, err)
	assert.Empty(t, users)

	groups, err := store.ListGroups()
	assert.NoError(t, err)
	assert.Empty(t, groups)

	stats, err := store.GetStats()
	assert.NoError(t, err)
	assert.Equal(t, domain.BroadcastStats{}, stats)
}

func TestStore_EnsureUser(t *testing.T) {
	store, dir := newTestStore(t)

	created, err := store.EnsureUser(42)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.EnsureUser(42)
	require.NoError(t, err)
	assert.False(t, created, "second registration must not append")

	created, err = store.EnsureUser(7)
	require.NoError(t, err)
	assert.True(t, created)

	users, err := store.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, []int64{42, 7}, users)

	raw, err := os.ReadFile(filepath.Join(dir, usersFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[42, 7]`, string(raw))
}

func TestStore_AddGroup(t *testing.T) {
	store, _ := newTestStore(t)

	for _, id := range []int64{-100, -200, -100} {
		_, err := store.AddGroup(id)
		require.NoError(t, err)
	}

	groups, err := store.ListGroups()
	require.NoError(t, err)
	assert.Equal(t, []int64{-100, -200}, groups)
}

func TestStore_AddStats(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.AddStats(domain.BroadcastStats{SentGroups: 3, FailedGroups: 1})
	require.NoError(t, err)
	total, err := store.AddStats(domain.BroadcastStats{SentGroups: 2, SentUsers: 5})
	require.NoError(t, err)

	want := domain.BroadcastStats{SentUsers: 5, SentGroups: 5, FailedGroups: 1}
	assert.Equal(t, want, total)

	// survives a reopen
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	stats, err := reopened.GetStats()
	require.NoError(t, err)
	assert.Equal(t, want, stats)

	raw, err := os.ReadFile(filepath.Join(dir, statsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sent_users":5,"failed_users":0,"sent_groups":5,"failed_groups":1}`, string(raw))
}

func TestStore_ConcurrentAddStatsKeepsEveryDelta(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddStats(domain.BroadcastStats{SentGroups: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 20, stats.SentGroups)
}

func TestStore_CorruptFileIsNotOverwritten(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, groupsFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.AddGroup(-1)
	assert.Error(t, err)

	_, err = store.ListGroups()
	assert.Error(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/plangrid/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*RedisStateRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStateRepo(client), mr
}

func stateRepos(t *testing.T) map[string]StateRepo {
	t.Helper()
	redisRepo, _ := newRedisRepo(t)
	return map[string]StateRepo{
		"sqlite": NewSQLiteStateRepo(testutil.NewTestDB(t)),
		"redis":  redisRepo,
		"memory": NewMemoryStateRepo(),
	}
}

func TestStateRepo_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	updated := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			rec := &StateRecord{Key: "plangrid-state", SchemaVersion: 2, Payload: []byte(`{"version":2}`), UpdatedAt: updated}
			require.NoError(t, repo.Save(ctx, rec))

			loaded, err := repo.Load(ctx, "plangrid-state")
			require.NoError(t, err)
			assert.Equal(t, "plangrid-state", loaded.Key)
			assert.Equal(t, 2, loaded.SchemaVersion)
			assert.JSONEq(t, `{"version":2}`, string(loaded.Payload))
			assert.True(t, updated.Equal(loaded.UpdatedAt))
		})
	}
}

func TestStateRepo_SaveOverwrites(t *testing.T) {
	ctx := context.Background()

	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Save(ctx, &StateRecord{Key: "k", SchemaVersion: 1, Payload: []byte(`{"a":1}`)}))
			require.NoError(t, repo.Save(ctx, &StateRecord{Key: "k", SchemaVersion: 2, Payload: []byte(`{"a":2}`)}))

			loaded, err := repo.Load(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, 2, loaded.SchemaVersion)
			assert.JSONEq(t, `{"a":2}`, string(loaded.Payload))
			assert.False(t, loaded.UpdatedAt.IsZero())
		})
	}
}

func TestStateRepo_LoadMissing(t *testing.T) {
	ctx := context.Background()

	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrStateNotFound)
		})
	}
}

func TestStateRepo_Delete(t *testing.T) {
	ctx := context.Background()

	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Save(ctx, &StateRecord{Key: "k", SchemaVersion: 2, Payload: []byte(`{}`)}))
			require.NoError(t, repo.Delete(ctx, "k"))

			_, err := repo.Load(ctx, "k")
			assert.ErrorIs(t, err, ErrStateNotFound)

			// Deleting twice is not an error.
			assert.NoError(t, repo.Delete(ctx, "k"))
		})
	}
}

func TestStateRepo_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Save(ctx, &StateRecord{Key: "a", SchemaVersion: 2, Payload: []byte(`"a"`)}))
			require.NoError(t, repo.Save(ctx, &StateRecord{Key: "b", SchemaVersion: 2, Payload: []byte(`"b"`)}))

			a, err := repo.Load(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, `"a"`, string(a.Payload))
		})
	}
}

func TestRedisStateRepo_KeyLayout(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &StateRecord{Key: "plangrid-state", SchemaVersion: 2, Payload: []byte(`{}`)}))

	assert.True(t, mr.Exists("plangrid:state:plangrid-state"))
	assert.Equal(t, "{}", mr.HGet("plangrid:state:plangrid-state", "payload"))
	assert.Equal(t, "2", mr.HGet("plangrid:state:plangrid-state", "schema_version"))
}

func TestMemoryStateRepo_ReturnsCopies(t *testing.T) {
	repo := NewMemoryStateRepo()
	ctx := context.Background()
	payload := []byte(`{"x":1}`)

	require.NoError(t, repo.Save(ctx, &StateRecord{Key: "k", Payload: payload}))
	payload[2] = 'y'

	loaded, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(loaded.Payload))
}

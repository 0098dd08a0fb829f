package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("t1")))
	require.NoError(t, r.Set(ctx, "username", nil))

	m, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{"token": []byte("t1"), "username": {}}, m)
}

func TestList_OnlyRequestedKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for _, k := range []string{"token", "user_id", "theme"} {
		require.NoError(t, r.Set(ctx, k, []byte(k)))
	}

	m, err := r.List(ctx, "token", "user_id", "username")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"token": []byte("token"), "user_id": []byte("user_id")}, m)
}

func TestList_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	m, err := r.List(context.Background(), "token")
	require.NoError(t, err)
	require.Empty(t, m)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "username", []byte("bob")))
	require.NoError(t, r.Set(ctx, "username", []byte("alice")))

	m, err := r.List(ctx, "username")
	require.NoError(t, err)
	require.Equal(t, []byte("alice"), m["username"])
}

func TestDelete_SeveralKeysAndIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for _, k := range []string{"token", "user_id", "username", "theme"} {
		require.NoError(t, r.Set(ctx, k, []byte("x")))
	}

	require.NoError(t, r.Delete(ctx, "token", "user_id", "username", "access", "refresh"))
	require.NoError(t, r.Delete(ctx, "token"))
	require.NoError(t, r.Delete(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"theme": []byte("x")}, m)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	err := r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
}

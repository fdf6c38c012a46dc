package storage

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/kv"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"

	_ "modernc.org/sqlite"
)

// fakeRepo is an in-memory kv.Repository whose calls can be made to fail.
type fakeRepo struct {
	data map[string][]byte

	getErr, setErr, delErr, clearErr error
	deleted                          []string
}

func newFakeRepo() *fakeRepo { return &fakeRepo{data: map[string][]byte{}} }

func (f *fakeRepo) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[key], nil
}
func (f *fakeRepo) Set(_ context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}
func (f *fakeRepo) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}
func (f *fakeRepo) List(context.Context) (map[string][]byte, error) { return f.data, nil }
func (f *fakeRepo) Clear(context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.data = map[string][]byte{}
	return nil
}

type fakeWiper struct {
	called bool
	err    error
}

func (w *fakeWiper) Wipe(context.Context) error { w.called = true; return w.err }

func TestStore_WriteThenRead(t *testing.T) {
	s := New(newFakeRepo(), nil, logging.Nop())
	ctx := context.Background()

	require.True(t, s.Write(ctx, "k", map[string]int{"a": 1}))

	var got map[string]int
	require.True(t, s.Read(ctx, "k", &got))
	require.Equal(t, map[string]int{"a": 1}, got)
}

func TestStore_Read_Missing(t *testing.T) {
	s := New(newFakeRepo(), nil, logging.Nop())
	var got []int
	require.False(t, s.Read(context.Background(), "nope", &got))
	require.Nil(t, got)
}

func TestStore_Read_RepoError_IsAbsorbed(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("storage disabled")
	s := New(repo, nil, logging.Nop())

	var got bool
	require.False(t, s.Read(context.Background(), "k", &got))
}

func TestStore_Read_CorruptJSON_IsDropped(t *testing.T) {
	repo := newFakeRepo()
	repo.data["history"] = []byte(`[{"id":`)
	s := New(repo, nil, logging.Nop())

	var got []map[string]any
	require.False(t, s.Read(context.Background(), "history", &got))
	require.Equal(t, []string{"history"}, repo.deleted)
	_, still := repo.data["history"]
	require.False(t, still)
}

func TestStore_Read_CorruptJSON_DeleteFailureStillFalse(t *testing.T) {
	repo := newFakeRepo()
	repo.data["k"] = []byte(`{{`)
	repo.delErr = errors.New("readonly")
	s := New(repo, nil, logging.Nop())

	var got map[string]any
	require.False(t, s.Read(context.Background(), "k", &got))
}

func TestStore_Write_Failures(t *testing.T) {
	repo := newFakeRepo()
	repo.setErr = errors.New("quota exceeded")
	s := New(repo, nil, logging.Nop())
	ctx := context.Background()

	require.False(t, s.Write(ctx, "k", 1))
	// Values that cannot be encoded are rejected before touching the repo.
	require.False(t, New(newFakeRepo(), nil, logging.Nop()).Write(ctx, "k", math.Inf(1)))
}

func TestStore_Remove(t *testing.T) {
	repo := newFakeRepo()
	repo.data["k"] = []byte("1")
	s := New(repo, nil, logging.Nop())

	require.True(t, s.Remove(context.Background(), "k"))
	require.Empty(t, repo.data)

	repo.delErr = errors.New("locked")
	require.False(t, s.Remove(context.Background(), "k"))
}

func TestStore_Wipe(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	repo.data["k"] = []byte("1")
	require.True(t, New(repo, nil, logging.Nop()).Wipe(ctx))
	require.Empty(t, repo.data)

	w := &fakeWiper{}
	require.True(t, New(newFakeRepo(), w, logging.Nop()).Wipe(ctx))
	require.True(t, w.called)

	require.False(t, New(newFakeRepo(), &fakeWiper{err: errors.New("busy")}, logging.Nop()).Wipe(ctx))
}

func TestStore_OverSQLite_ClosedDatabaseDegrades(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	s := New(kv.NewSQLiteRepository(db), nil, logging.Nop())
	ctx := context.Background()

	require.True(t, s.Write(ctx, "imagen-ai-studio-isLoggedIn", true))
	var flag bool
	require.True(t, s.Read(ctx, "imagen-ai-studio-isLoggedIn", &flag))
	require.True(t, flag)

	require.NoError(t, db.Close())

	require.False(t, s.Write(ctx, "imagen-ai-studio-isLoggedIn", false))
	require.False(t, s.Read(ctx, "imagen-ai-studio-isLoggedIn", &flag))
	require.False(t, s.Remove(ctx, "imagen-ai-studio-isLoggedIn"))
}

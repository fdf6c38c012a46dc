package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/kv"
	"github.com/dmitrijs2005/imagenstudio/internal/client/storage"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
)

func newStore(t *testing.T) (*storage.Store, *kv.MemoryRepository) {
	t.Helper()
	repo := kv.NewMemoryRepository()
	return storage.New(repo, nil, logging.Nop()), repo
}

func TestGetAll_EmptyByDefault(t *testing.T) {
	s, _ := newStore(t)
	dir := NewDirectory(s).GetAll(context.Background())
	require.NotNil(t, dir)
	require.Empty(t, dir)
}

func TestGetAll_CorruptValueDegradesToEmpty(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.UsersStorageKey, []byte(`not json`)))

	require.Empty(t, NewDirectory(s).GetAll(ctx))
}

func TestGetAll_NullValueDegradesToEmpty(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.UsersStorageKey, []byte(`null`)))

	dir := NewDirectory(s).GetAll(ctx)
	require.NotNil(t, dir)
	require.Empty(t, dir)
}

func TestCreate_ThenFind(t *testing.T) {
	s, _ := newStore(t)
	d := NewDirectory(s)
	ctx := context.Background()

	require.NoError(t, d.Create(ctx, "a@x.com", "secret1"))

	u, ok := d.FindByEmail(ctx, "a@x.com")
	require.True(t, ok)
	assert.Equal(t, models.UserRecord{Password: "secret1", Verified: true}, u)

	_, ok = d.FindByEmail(ctx, "b@x.com")
	require.False(t, ok)
}

func TestCreate_DuplicateDoesNotMutate(t *testing.T) {
	s, _ := newStore(t)
	d := NewDirectory(s)
	ctx := context.Background()

	require.NoError(t, d.Create(ctx, "a@x.com", "secret1"))
	before := d.GetAll(ctx)

	err := d.Create(ctx, "a@x.com", "another1")
	require.ErrorIs(t, err, common.ErrEmailTaken)
	require.Equal(t, before, d.GetAll(ctx))
}

type failingStore struct{ storage.KeyValue }

func (failingStore) Write(context.Context, string, any) bool { return false }

func TestCreate_StorageFailureSurfacesGenerically(t *testing.T) {
	s, _ := newStore(t)
	d := NewDirectory(failingStore{s})

	err := d.Create(context.Background(), "a@x.com", "secret1")
	require.True(t, errors.Is(err, common.ErrStorageUnavailable))
}

func TestSave_RoundTripIsKeySetEqual(t *testing.T) {
	s, _ := newStore(t)
	d := NewDirectory(s)
	ctx := context.Background()

	exp := time.UnixMilli(1_700_003_600_000)
	in := models.Directory{
		"a@x.com": {Password: "secret1", Verified: true},
		"b@x.com": {Password: "secret2", Verified: true, ResetToken: "t", ResetTokenExpiry: exp.UnixMilli()},
	}
	require.True(t, d.Save(ctx, in))
	require.Equal(t, in, d.GetAll(ctx))
}

func TestFindByResetToken(t *testing.T) {
	s, _ := newStore(t)
	d := NewDirectory(s)
	ctx := context.Background()

	require.True(t, d.Save(ctx, models.Directory{
		"a@x.com": {Password: "secret1", Verified: true},
		"c@x.com": {Password: "secret3", Verified: true, ResetToken: "dup", ResetTokenExpiry: 10},
		"b@x.com": {Password: "secret2", Verified: true, ResetToken: "dup", ResetTokenExpiry: 20},
	}))

	email, u, ok := d.FindByResetToken(ctx, "dup")
	require.True(t, ok)
	assert.Equal(t, "b@x.com", email, "first match in email order")
	assert.Equal(t, int64(20), u.ResetTokenExpiry)

	_, _, ok = d.FindByResetToken(ctx, "nope")
	require.False(t, ok)

	_, _, ok = d.FindByResetToken(ctx, "")
	require.False(t, ok, "records without a token must not match the empty token")
}

// Two directories sharing a store model two tabs. The read-modify-write cycle
// is not guarded, so the writer holding the older snapshot wins.
func TestConcurrentWriters_LastWriteWins(t *testing.T) {
	s, _ := newStore(t)
	tab1, tab2 := NewDirectory(s), NewDirectory(s)
	ctx := context.Background()

	snap1 := tab1.GetAll(ctx)
	snap2 := tab2.GetAll(ctx)

	snap1["a@x.com"] = models.UserRecord{Password: "secret1", Verified: true}
	require.True(t, tab1.Save(ctx, snap1))

	snap2["b@x.com"] = models.UserRecord{Password: "secret2", Verified: true}
	require.True(t, tab2.Save(ctx, snap2))

	final := tab1.GetAll(ctx)
	_, hasA := final["a@x.com"]
	_, hasB := final["b@x.com"]
	assert.False(t, hasA, "update from the first writer is lost")
	assert.True(t, hasB)
}

package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/pkg/utils"
)

const (
	testOwner      = "0x00000000000000000000000000000000000000A1"
	testController = "0x00000000000000000000000000000000000000B2"
)

func TestNameRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createNameTable(t, db)
	repo := NewNameRepository(db)
	ctx := context.Background()

	name := &entities.Name{
		Name:       "arkdev",
		Owner:      testOwner,
		Controller: testOwner,
		ExpiresAt:  1_800_000_000,
		TokenID:    1,
	}
	require.NoError(t, repo.Create(ctx, name))
	assert.NotZero(t, name.ID)

	got, err := repo.GetByName(ctx, "arkdev")
	require.NoError(t, err)
	assert.Equal(t, "arkdev", got.Name)
	assert.Equal(t, testOwner, got.Owner)
	assert.Equal(t, int64(1), got.TokenID)
	assert.False(t, got.HasAlternateResolver())

	byToken, err := repo.GetByTokenID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, got.ID, byToken.ID)

	_, err = repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByTokenID(ctx, 99)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNameRepo_NextTokenID(t *testing.T) {
	db := newTestDB(t)
	createNameTable(t, db)
	repo := NewNameRepository(db)
	ctx := context.Background()

	next, err := repo.NextTokenID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	require.NoError(t, repo.Create(ctx, &entities.Name{
		Name: "first", Owner: testOwner, Controller: testOwner, ExpiresAt: 1, TokenID: next,
	}))

	next, err = repo.NextTokenID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
}

func TestNameRepo_Update(t *testing.T) {
	db := newTestDB(t)
	createNameTable(t, db)
	repo := NewNameRepository(db)
	ctx := context.Background()

	name := &entities.Name{
		Name: "arkdev", Owner: testOwner, Controller: testOwner, ExpiresAt: 100, TokenID: 1,
	}
	require.NoError(t, repo.Create(ctx, name))

	name.Owner = testController
	name.Controller = testController
	name.ExpiresAt = 200
	name.AlternateResolver = null.StringFrom(testController)
	require.NoError(t, repo.Update(ctx, name))

	got, err := repo.GetByName(ctx, "arkdev")
	require.NoError(t, err)
	assert.Equal(t, testController, got.Owner)
	assert.Equal(t, int64(200), got.ExpiresAt)
	require.True(t, got.HasAlternateResolver())
	assert.Equal(t, testController, got.AlternateResolver.String)

	// Clearing the resolver binding persists as NULL.
	name.AlternateResolver = null.String{}
	require.NoError(t, repo.Update(ctx, name))
	got, err = repo.GetByName(ctx, "arkdev")
	require.NoError(t, err)
	assert.False(t, got.HasAlternateResolver())

	// Updating a row that does not exist reports not found.
	ghost := &entities.Name{Name: "ghost", TokenID: 9}
	err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNameRepo_List(t *testing.T) {
	db := newTestDB(t)
	createNameTable(t, db)
	repo := NewNameRepository(db)
	ctx := context.Background()

	for i, n := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, repo.Create(ctx, &entities.Name{
			Name: n, Owner: testOwner, Controller: testOwner, ExpiresAt: 1, TokenID: int64(i + 1),
		}))
	}

	names, total, err := repo.List(ctx, utils.GetPaginationParams(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, names, 2)
	assert.Equal(t, "alpha", names[0].Name)
	assert.Equal(t, "beta", names[1].Name)

	names, _, err = repo.List(ctx, utils.GetPaginationParams(2, 2))
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "gamma", names[0].Name)
}

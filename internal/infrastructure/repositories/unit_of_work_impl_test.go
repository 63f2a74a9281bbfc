package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"wrld-names.backend/internal/domain/entities"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createNameTable(t, db)
	u := &UnitOfWorkImpl{db: db}
	repo := NewNameRepository(db)

	// commit path
	err := u.Do(context.Background(), func(ctx context.Context) error {
		return repo.Create(ctx, &entities.Name{
			Name: "committed", Owner: testOwner, Controller: testOwner, ExpiresAt: 1, TokenID: 1,
		})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("names").Count(&count).Error)
	require.Equal(t, int64(1), count)

	// rollback path: the first insert of the batch must not survive
	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, &entities.Name{
			Name: "doomed", Owner: testOwner, Controller: testOwner, ExpiresAt: 1, TokenID: 2,
		}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("names").Count(&count).Error)
	require.Equal(t, int64(1), count, "rolled-back insert must not persist")
}

func TestGetDB_FallbackAndTx(t *testing.T) {
	db := newTestDB(t)

	require.Equal(t, db, GetDB(context.Background(), db))

	tx := db.Begin()
	txCtx := context.WithValue(context.Background(), txKey, tx)
	require.Equal(t, tx, GetDB(txCtx, db))
	tx.Rollback()
}

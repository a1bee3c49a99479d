package sqlite

import (
	"context"
	"testing"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Datastore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store, err := NewDatastore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	user, err := store.Users().Create(ctx, dao.User{Username: "sk89q", Password: "hash", Role: dao.Normal})
	require.NoError(t, err)
	assert.Equal("sk89q", user.Username)
	assert.Equal(dao.Normal, user.Role)
	assert.Nil(user.Email)

	_, err = store.Users().Create(ctx, dao.User{Username: "sk89q", Password: "hash"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	byName, err := store.Users().GetByUsername(ctx, "sk89q")
	require.NoError(t, err)
	assert.Equal(user.ID, byName.ID)

	_, err = store.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(err, dao.ErrNotFound)

	other, err := store.Users().Create(ctx, dao.User{Username: "tetsu", Password: "hash"})
	require.NoError(t, err)
	other.Username = "sk89q"
	_, err = store.Users().Update(ctx, other.ID, other)
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	user.Role = dao.Admin
	updated, err := store.Users().Update(ctx, user.ID, user)
	require.NoError(t, err)
	assert.Equal(dao.Admin, updated.Role)

	give, err := store.Gives().Create(ctx, dao.Give{
		UserID:  user.ID,
		Targets: []string{"tetsu", "guest"},
		Stack:   host.ItemStack{Type: 50, Amount: host.Unlimited},
		Drop:    true,
	})
	require.NoError(t, err)
	assert.Equal([]string{"tetsu", "guest"}, give.Targets)
	assert.Equal(host.ItemStack{Type: 50, Amount: host.Unlimited}, give.Stack)
	assert.True(give.Drop)

	_, err = store.Gives().Create(ctx, dao.Give{
		UserID:  uuid.New(),
		Targets: []string{"sk89q"},
		Stack:   host.ItemStack{Type: 264, Amount: 3},
	})
	require.NoError(t, err)

	all, err := store.Gives().GetAll(ctx)
	require.NoError(t, err)
	if assert.Len(all, 2) {
		assert.Equal(give.ID, all[0].ID)
	}

	mine, err := store.Gives().GetAllByUser(ctx, user.ID)
	require.NoError(t, err)
	if assert.Len(mine, 1) {
		assert.Equal(give, mine[0])
	}

	deleted, err := store.Users().Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(user.ID, deleted.ID)

	_, err = store.Users().GetByID(ctx, user.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

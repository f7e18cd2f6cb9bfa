package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, m *InMemoryRepositoryManager, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := m.Users(nil).Create(context.Background(), &models.User{Username: n, Password: "h", FirstName: n})
		require.NoError(t, err)
	}
}

func TestInMemory_UsersUniqueAndSorted(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	seedUsers(t, m, "carol", "alice", "bob")

	_, err := m.Users(nil).Create(context.Background(), &models.User{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	list, err := m.Users(nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{list[0].Username, list[1].Username, list[2].Username})

	assert.ErrorIs(t, m.Users(nil).TouchLogin(context.Background(), "nobody"), common.ErrNotFound)
}

func TestInMemory_MessagesLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryRepositoryManager()
	seedUsers(t, m, "alice", "bob")
	repo := m.Messages(nil)

	_, err := repo.Create(ctx, "alice", "ghost", "hi")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 0, m.MessageCount())

	sent, err := repo.Create(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	d, err := repo.Get(ctx, sent.ID)
	require.NoError(t, err)
	assert.Nil(t, d.ReadAt)
	assert.Equal(t, "bob", d.ToUser.Username)

	first, err := repo.MarkRead(ctx, sent.ID)
	require.NoError(t, err)
	second, err := repo.MarkRead(ctx, sent.ID)
	require.NoError(t, err)
	assert.True(t, first.ReadAt.Equal(second.ReadAt))

	out, err := repo.ListFrom(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, out, 1)
	in, err := repo.ListTo(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, in)

	_, err = repo.MarkRead(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

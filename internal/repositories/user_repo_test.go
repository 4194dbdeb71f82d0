package repositories_test

import (
	"context"
	"testing"

	"tokobaju/internal/models"
	"tokobaju/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repos := map[string]repositories.UserRepository{
		"gorm":   repositories.NewGORMUserRepository(openTestDB(t)),
		"memory": repositories.NewInMemoryUserRepository(),
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			user := &models.User{Username: "testuser", PasswordHash: "hash"}
			require.NoError(t, repo.Create(ctx, user))
			assert.NotEmpty(t, user.ID)

			byName, err := repo.GetByUsername(ctx, "testuser")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byName.ID)
			assert.Equal(t, "hash", byName.PasswordHash)

			_, err = repo.GetByUsername(ctx, "nobody")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			err = repo.Create(ctx, &models.User{Username: "testuser", PasswordHash: "other"})
			assert.ErrorIs(t, err, repositories.ErrDuplicate)
		})
	}
}

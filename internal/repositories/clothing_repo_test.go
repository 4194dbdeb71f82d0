package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"tokobaju/internal/models"
	"tokobaju/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a private in-memory SQLite database with the schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ClothingItem{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func clothingRepositories(t *testing.T) map[string]repositories.ClothingRepository {
	return map[string]repositories.ClothingRepository{
		"gorm":   repositories.NewGORMClothingRepository(openTestDB(t)),
		"memory": repositories.NewInMemoryClothingRepository(),
	}
}

func TestClothingRepository_CRUD(t *testing.T) {
	for name, repo := range clothingRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			item := &models.ClothingItem{Name: "Linen Shirt", Material: models.MaterialLinen, Price: 40, Discount: 15}
			require.NoError(t, repo.Create(ctx, item))
			_, err := uuid.Parse(item.ID)
			require.NoError(t, err, "generated IDs are UUIDs")

			fetched, err := repo.GetByID(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, item.Name, fetched.Name)
			assert.Equal(t, item.Material, fetched.Material)
			assert.Equal(t, item.Price, fetched.Price)
			assert.Equal(t, item.Discount, fetched.Discount)

			// Zero values are written on update
			fetched.Discount = 0
			fetched.Name = "Linen Shirt v2"
			require.NoError(t, repo.Update(ctx, fetched))
			again, err := repo.GetByID(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, 0.0, again.Discount)
			assert.Equal(t, "Linen Shirt v2", again.Name)

			require.NoError(t, repo.Delete(ctx, item.ID))
			_, err = repo.GetByID(ctx, item.ID)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, item.ID), repositories.ErrNotFound)
		})
	}
}

func TestClothingRepository_MissingAndMalformedIDs(t *testing.T) {
	for name, repo := range clothingRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			missing := uuid.NewString()

			_, err := repo.GetByID(ctx, missing)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
			err = repo.Update(ctx, &models.ClothingItem{ID: missing, Name: "x", Material: models.MaterialCotton})
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			_, err = repo.GetByID(ctx, "12345")
			assert.ErrorIs(t, err, repositories.ErrInvalidID)
			assert.ErrorIs(t, repo.Delete(ctx, "12345"), repositories.ErrInvalidID)
		})
	}
}

func TestClothingRepository_DeleteAll(t *testing.T) {
	for name, repo := range clothingRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var ids []string
			for i := 0; i < 3; i++ {
				item := &models.ClothingItem{Name: fmt.Sprintf("Tee %d", i), Material: models.MaterialCotton, Price: 10}
				require.NoError(t, repo.Create(ctx, item))
				ids = append(ids, item.ID)
			}

			require.NoError(t, repo.DeleteAll(ctx))
			for _, id := range ids {
				_, err := repo.GetByID(ctx, id)
				assert.ErrorIs(t, err, repositories.ErrNotFound)
			}
			assert.NoError(t, repo.DeleteAll(ctx))
		})
	}
}

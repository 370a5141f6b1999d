package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
)

func TestRefreshTokenRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("stores the token and records the id", func(mt *mtest.T) {
		repo := NewRefreshTokenRepository(NewStoreFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		now := time.Now()
		rt := &entity.RefreshToken{
			Token:     "rt",
			UserID:    primitive.NewObjectID().Hex(),
			ExpiresAt: now.Add(7 * 24 * time.Hour),
			CreatedAt: now,
		}
		require.NoError(mt, repo.Insert(ctx, rt))
		assert.NotEmpty(mt, rt.ID)
	})

	mt.Run("rejects an owner that is not an object id", func(mt *mtest.T) {
		repo := NewRefreshTokenRepository(NewStoreFromDatabase(mt.DB))
		err := repo.Insert(ctx, &entity.RefreshToken{Token: "rt", UserID: "42"})
		assert.Error(mt, err)
	})

	mt.Run("surfaces server errors", func(mt *mtest.T) {
		repo := NewRefreshTokenRepository(NewStoreFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		err := repo.Insert(ctx, &entity.RefreshToken{Token: "rt", UserID: primitive.NewObjectID().Hex()})
		assert.Error(mt, err)
	})
}

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
	"github.com/mfund-labs/mf-backend/internal/domain/repository"
)

func userDoc(id primitive.ObjectID, email string) bson.D {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "googleId", Value: "g-42"},
		{Key: "email", Value: email},
		{Key: "name", Value: "Alice"},
		{Key: "provider", Value: "google"},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "role", Value: "USER"},
		{Key: "isVerified", Value: true},
		{Key: "kycStatus", Value: "VERIFIED"},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by email or google id returns the stored user", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mf.users", mtest.FirstBatch, userDoc(id, "a@x.com")))

		u, err := repo.FindByEmailOrGoogleID(ctx, "a@x.com", "g-42")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.Equal(mt, "a@x.com", u.Email)
		assert.Equal(mt, entity.ProviderGoogle, u.Provider)
		assert.Equal(mt, entity.KYCVerified, u.KYCStatus)
	})

	mt.Run("find returns ErrNotFound on empty cursor", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mf.users", mtest.FirstBatch))

		_, err := repo.FindByEmailOrGoogleID(ctx, "nobody@x.com", "")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("apply google profile returns the post-update document", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: userDoc(id, "a@x.com")},
		})

		u, err := repo.ApplyGoogleProfile(ctx, id.Hex(), repository.GoogleProfile{GoogleID: "g-42", Name: "Alice"})
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.True(mt, u.IsVerified)
	})

	mt.Run("apply google profile on a vanished user is ErrNotFound", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.ApplyGoogleProfile(ctx, primitive.NewObjectID().Hex(), repository.GoogleProfile{GoogleID: "g-42"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("apply google profile rejects malformed ids without a round trip", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		_, err := repo.ApplyGoogleProfile(ctx, "not-an-object-id", repository.GoogleProfile{})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("insert returns the generated id", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(ctx, &entity.User{Email: "a@x.com", Provider: entity.ProviderGoogle})
		require.NoError(mt, err)
		_, perr := primitive.ObjectIDFromHex(id)
		assert.NoError(mt, perr)
	})

	mt.Run("insert maps duplicate key to ErrDuplicate", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: mf.users index: users_email_unique",
		}))

		_, err := repo.Insert(ctx, &entity.User{Email: "a@x.com"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewUserRepository(NewStoreFromDatabase(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mf.users", mtest.FirstBatch, userDoc(id, "b@x.com")))

		u, err := repo.GetByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "b@x.com", u.Email)
	})
}

func TestGoogleProfileUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("always sets identity fields", func(t *testing.T) {
		upd := googleProfileUpdate(repository.GoogleProfile{GoogleID: "g-1", Name: "Bob", Picture: "https://pic"}, now)
		set := upd.Map()["$set"].(bson.D).Map()

		assert.Equal(t, "g-1", set["googleId"])
		assert.Equal(t, "google", set["provider"])
		assert.Equal(t, true, set["isVerified"])
		assert.Equal(t, now, set["updatedAt"])
		assert.Equal(t, "Bob", set["name"])
		assert.Equal(t, "https://pic", set["profilePicture"])
	})

	t.Run("absent picture and name are left alone", func(t *testing.T) {
		upd := googleProfileUpdate(repository.GoogleProfile{GoogleID: "g-1"}, now)
		set := upd.Map()["$set"].(bson.D).Map()

		assert.NotContains(t, set, "profilePicture")
		assert.NotContains(t, set, "name")
	})

	t.Run("never touches kyc, role or password", func(t *testing.T) {
		upd := googleProfileUpdate(repository.GoogleProfile{GoogleID: "g-1", Name: "Bob", Picture: "p"}, now)
		set := upd.Map()["$set"].(bson.D).Map()

		assert.NotContains(t, set, "kycStatus")
		assert.NotContains(t, set, "role")
		assert.NotContains(t, set, "password")
		assert.Len(t, upd, 1)
	})
}

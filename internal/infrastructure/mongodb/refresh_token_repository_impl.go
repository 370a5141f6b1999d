package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
	"github.com/mfund-labs/mf-backend/internal/domain/repository"
)

type refreshTokenDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	UserID    primitive.ObjectID `bson:"userId"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type RefreshTokenRepository struct {
	coll *mongo.Collection
}

func NewRefreshTokenRepository(s *Store) *RefreshTokenRepository {
	return &RefreshTokenRepository{coll: s.collection(refreshTokensCollection)}
}

func (r *RefreshTokenRepository) Insert(ctx context.Context, t *entity.RefreshToken) error {
	uid, err := primitive.ObjectIDFromHex(t.UserID)
	if err != nil {
		return fmt.Errorf("refresh token owner %q: %w", t.UserID, err)
	}
	res, err := r.coll.InsertOne(ctx, refreshTokenDocument{
		Token:     t.Token,
		UserID:    uid,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

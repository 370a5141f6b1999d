package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
	"github.com/mfund-labs/mf-backend/internal/domain/repository"
)

// userDocument mirrors the users collection shared with the rest of the
// platform, hence the camelCase field names.
type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	GoogleID       string             `bson:"googleId,omitempty"`
	Email          string             `bson:"email"`
	Name           string             `bson:"name"`
	ProfilePicture string             `bson:"profilePicture,omitempty"`
	Provider       string             `bson:"provider"`
	Password       string             `bson:"password"`
	Role           string             `bson:"role"`
	IsVerified     bool               `bson:"isVerified"`
	KYCStatus      string             `bson:"kycStatus"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:             d.ID.Hex(),
		GoogleID:       d.GoogleID,
		Email:          d.Email,
		Name:           d.Name,
		ProfilePicture: d.ProfilePicture,
		Provider:       entity.Provider(d.Provider),
		Password:       d.Password,
		Role:           entity.Role(d.Role),
		IsVerified:     d.IsVerified,
		KYCStatus:      entity.KYCStatus(d.KYCStatus),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func userFromEntity(u *entity.User) *userDocument {
	return &userDocument{
		GoogleID:       u.GoogleID,
		Email:          u.Email,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		Provider:       string(u.Provider),
		Password:       u.Password,
		Role:           string(u.Role),
		IsVerified:     u.IsVerified,
		KYCStatus:      string(u.KYCStatus),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{coll: s.collection(usersCollection), now: time.Now}
}

func (r *UserRepository) FindByEmailOrGoogleID(ctx context.Context, email, googleID string) (*entity.User, error) {
	filter := bson.M{"email": email}
	if googleID != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"email": email},
			bson.M{"googleId": googleID},
		}}
	}
	return r.findOne(ctx, filter)
}

func (r *UserRepository) ApplyGoogleProfile(ctx context.Context, id string, p repository.GoogleProfile) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, googleProfileUpdate(p, r.now()), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// googleProfileUpdate never unsets fields: an empty name or picture in the
// claim keeps what is stored, and KYC/role/password are not touched.
func googleProfileUpdate(p repository.GoogleProfile, now time.Time) bson.D {
	set := bson.D{
		{Key: "googleId", Value: p.GoogleID},
		{Key: "provider", Value: string(entity.ProviderGoogle)},
		{Key: "isVerified", Value: true},
		{Key: "updatedAt", Value: now},
	}
	if p.Name != "" {
		set = append(set, bson.E{Key: "name", Value: p.Name})
	}
	if p.Picture != "" {
		set = append(set, bson.E{Key: "profilePicture", Value: p.Picture})
	}
	return bson.D{{Key: "$set", Value: set}}
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) (string, error) {
	res, err := r.coll.InsertOne(ctx, userFromEntity(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("mongodb: unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter any) (*entity.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

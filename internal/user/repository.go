package user

import (
	"context"
	"errors"
	"time"

	"wikiarea-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the data access contract for users. Lookup methods
// return (nil, nil) when no matching document exists; soft-deleted users are
// invisible to every query.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	GetByAdfsID(ctx context.Context, adfsID string) (*domain.User, error)
	GetByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	Search(ctx context.Context, term string) ([]domain.User, error)
	IsUsernameUnique(ctx context.Context, username, excludeUserID string) (bool, error)
	IsEmailUnique(ctx context.Context, email, excludeUserID string) (bool, error)
}

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database, collectionName string) UserRepository {
	return &MongoUserRepository{collection: database.Collection(collectionName)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// Update replaces the document by id. Last writer wins; there is no
// concurrency token.
func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

// SoftDelete flags the document; it stays in storage for the audit trail.
func (r *MongoUserRepository) SoftDelete(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (r *MongoUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.findMany(ctx, bson.M{"isDeleted": false}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
}

func (r *MongoUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	filter := bson.M{
		"isDeleted": false,
		"$or": bson.A{
			bson.M{"username": username},
			bson.M{"email": email},
		},
	}
	return r.findOne(ctx, filter)
}

func (r *MongoUserRepository) GetByAdfsID(ctx context.Context, adfsID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"adfsId": adfsID, "isDeleted": false})
}

func (r *MongoUserRepository) GetByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	return r.findMany(ctx, bson.M{"role": role, "isDeleted": false}, nil)
}

// Search matches username, display name or email, case-insensitively.
func (r *MongoUserRepository) Search(ctx context.Context, term string) ([]domain.User, error) {
	pattern := bson.M{"$regex": term, "$options": "i"}
	filter := bson.M{
		"isDeleted": false,
		"$or": bson.A{
			bson.M{"username": pattern},
			bson.M{"displayName": pattern},
			bson.M{"email": pattern},
		},
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
}

func (r *MongoUserRepository) IsUsernameUnique(ctx context.Context, username, excludeUserID string) (bool, error) {
	filter := bson.M{"username": username, "isDeleted": false}
	if excludeUserID != "" {
		filter["_id"] = bson.M{"$ne": excludeUserID}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	return count == 0, err
}

func (r *MongoUserRepository) IsEmailUnique(ctx context.Context, email, excludeUserID string) (bool, error) {
	filter := bson.M{"email": email, "isDeleted": false}
	if excludeUserID != "" {
		filter["_id"] = bson.M{"$ne": excludeUserID}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	return count == 0, err
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.User, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

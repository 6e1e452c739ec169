package comment

import (
	"context"
	"errors"
	"time"

	"wikiarea-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository is the data access contract for comments. Lookups return
// (nil, nil) on miss; soft-deleted comments are excluded everywhere.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	GetByWikiPageID(ctx context.Context, wikiPageID string) ([]domain.Comment, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]domain.Comment, error)
	GetReplies(ctx context.Context, parentCommentID string) ([]domain.Comment, error)
	GetUnresolved(ctx context.Context, wikiPageID string) ([]domain.Comment, error)
	GetByMention(ctx context.Context, username string) ([]domain.Comment, error)
	CountByWikiPageID(ctx context.Context, wikiPageID string) (int64, error)
}

type MongoCommentRepository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database, collectionName string) CommentRepository {
	return &MongoCommentRepository{collection: database.Collection(collectionName)}
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

func (r *MongoCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	comment.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": comment.ID}, comment)
	return err
}

func (r *MongoCommentRepository) SoftDelete(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByWikiPageID returns top-level comments oldest first; replies are
// fetched per thread.
func (r *MongoCommentRepository) GetByWikiPageID(ctx context.Context, wikiPageID string) ([]domain.Comment, error) {
	filter := bson.M{
		"wikiPageId":      wikiPageID,
		"isDeleted":       false,
		"parentCommentId": bson.M{"$in": bson.A{nil, ""}},
	}
	return r.findMany(ctx, filter, 1)
}

func (r *MongoCommentRepository) GetByAuthorID(ctx context.Context, authorID string) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"authorId": authorID, "isDeleted": false}, -1)
}

func (r *MongoCommentRepository) GetReplies(ctx context.Context, parentCommentID string) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"parentCommentId": parentCommentID, "isDeleted": false}, 1)
}

func (r *MongoCommentRepository) GetUnresolved(ctx context.Context, wikiPageID string) ([]domain.Comment, error) {
	filter := bson.M{"wikiPageId": wikiPageID, "isResolved": false, "isDeleted": false}
	return r.findMany(ctx, filter, 1)
}

// GetByMention lists comments mentioning a username, newest first.
func (r *MongoCommentRepository) GetByMention(ctx context.Context, username string) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"mentions": username, "isDeleted": false}, -1)
}

func (r *MongoCommentRepository) CountByWikiPageID(ctx context.Context, wikiPageID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"wikiPageId": wikiPageID, "isDeleted": false})
}

func (r *MongoCommentRepository) findMany(ctx context.Context, filter bson.M, createdAtOrder int) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: createdAtOrder}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []domain.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

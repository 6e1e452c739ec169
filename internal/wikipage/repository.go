package wikipage

import (
	"context"
	"errors"
	"strings"
	"time"

	"wikiarea-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageRepository is the data access contract for wiki pages. Lookups return
// (nil, nil) on miss. Every query carries the soft-delete predicate so a
// deleted page never leaks into a read path.
type PageRepository interface {
	Create(ctx context.Context, page *domain.WikiPage) error
	Update(ctx context.Context, page *domain.WikiPage) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.WikiPage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.WikiPage, error)
	GetByFolderID(ctx context.Context, folderID string) ([]domain.WikiPage, error)
	GetByTag(ctx context.Context, tag string) ([]domain.WikiPage, error)
	GetByStatus(ctx context.Context, status domain.PageStatus) ([]domain.WikiPage, error)
	GetByAuthor(ctx context.Context, authorID string) ([]domain.WikiPage, error)
	Search(ctx context.Context, term string) ([]domain.WikiPage, error)
	GetRecentlyUpdated(ctx context.Context, count int) ([]domain.WikiPage, error)
	GetMostViewed(ctx context.Context, count int) ([]domain.WikiPage, error)
	GetForReview(ctx context.Context) ([]domain.WikiPage, error)
	IsSlugUnique(ctx context.Context, slug, excludePageID string) (bool, error)
}

type MongoPageRepository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database, collectionName string) PageRepository {
	return &MongoPageRepository{collection: database.Collection(collectionName)}
}

func (r *MongoPageRepository) Create(ctx context.Context, page *domain.WikiPage) error {
	_, err := r.collection.InsertOne(ctx, page)
	return err
}

// Update replaces the document by id unconditionally: concurrent edits race
// with last-writer-wins semantics, there is no optimistic concurrency token.
func (r *MongoPageRepository) Update(ctx context.Context, page *domain.WikiPage) error {
	page.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": page.ID}, page)
	return err
}

// SoftDelete flags the document; it stays in storage for the audit trail.
func (r *MongoPageRepository) SoftDelete(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoPageRepository) GetByID(ctx context.Context, id string) (*domain.WikiPage, error) {
	return r.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (r *MongoPageRepository) GetBySlug(ctx context.Context, slug string) (*domain.WikiPage, error) {
	return r.findOne(ctx, bson.M{"slug": slug, "isDeleted": false})
}

// GetByFolderID lists pages in a folder; an empty folderID means pages
// outside any folder.
func (r *MongoPageRepository) GetByFolderID(ctx context.Context, folderID string) ([]domain.WikiPage, error) {
	filter := bson.M{"isDeleted": false}
	if folderID == "" {
		filter["folderId"] = bson.M{"$in": bson.A{nil, ""}}
	} else {
		filter["folderId"] = folderID
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

func (r *MongoPageRepository) GetByTag(ctx context.Context, tag string) ([]domain.WikiPage, error) {
	filter := bson.M{"tags": strings.ToLower(tag), "isDeleted": false}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

func (r *MongoPageRepository) GetByStatus(ctx context.Context, status domain.PageStatus) ([]domain.WikiPage, error) {
	filter := bson.M{"status": status, "isDeleted": false}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

func (r *MongoPageRepository) GetByAuthor(ctx context.Context, authorID string) ([]domain.WikiPage, error) {
	filter := bson.M{"createdBy": authorID, "isDeleted": false}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

// Search runs against the title+content text index.
func (r *MongoPageRepository) Search(ctx context.Context, term string) ([]domain.WikiPage, error) {
	filter := bson.M{"$text": bson.M{"$search": term}, "isDeleted": false}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

func (r *MongoPageRepository) GetRecentlyUpdated(ctx context.Context, count int) ([]domain.WikiPage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(int64(count))
	return r.findMany(ctx, bson.M{"isDeleted": false}, opts)
}

func (r *MongoPageRepository) GetMostViewed(ctx context.Context, count int) ([]domain.WikiPage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "viewCount", Value: -1}}).SetLimit(int64(count))
	return r.findMany(ctx, bson.M{"isDeleted": false}, opts)
}

// GetForReview lists the review queue, oldest submission first.
func (r *MongoPageRepository) GetForReview(ctx context.Context) ([]domain.WikiPage, error) {
	filter := bson.M{"status": domain.PageStatusUnderReview, "isDeleted": false}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}}))
}

func (r *MongoPageRepository) IsSlugUnique(ctx context.Context, slug, excludePageID string) (bool, error) {
	filter := bson.M{"slug": slug, "isDeleted": false}
	if excludePageID != "" {
		filter["_id"] = bson.M{"$ne": excludePageID}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	return count == 0, err
}

func (r *MongoPageRepository) findOne(ctx context.Context, filter bson.M) (*domain.WikiPage, error) {
	var page domain.WikiPage
	err := r.collection.FindOne(ctx, filter).Decode(&page)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *MongoPageRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.WikiPage, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pages := []domain.WikiPage{}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

package wikifolder

import (
	"context"
	"errors"
	"time"

	"wikiarea-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FolderRepository is the data access contract for wiki folders. Lookups
// return (nil, nil) on miss and every query excludes soft-deleted documents.
type FolderRepository interface {
	Create(ctx context.Context, folder *domain.WikiFolder) error
	Update(ctx context.Context, folder *domain.WikiFolder) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.WikiFolder, error)
	GetByPath(ctx context.Context, path string) (*domain.WikiFolder, error)
	GetByParentID(ctx context.Context, parentID string) ([]domain.WikiFolder, error)
	GetRootFolders(ctx context.Context) ([]domain.WikiFolder, error)
	GetDescendants(ctx context.Context, folderID string) ([]domain.WikiFolder, error)
	GetAncestors(ctx context.Context, folderID string) ([]domain.WikiFolder, error)
	IsPathUnique(ctx context.Context, path, excludeFolderID string) (bool, error)
	HasChildren(ctx context.Context, folderID string) (bool, error)
}

type MongoFolderRepository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database, collectionName string) FolderRepository {
	return &MongoFolderRepository{collection: database.Collection(collectionName)}
}

func (r *MongoFolderRepository) Create(ctx context.Context, folder *domain.WikiFolder) error {
	_, err := r.collection.InsertOne(ctx, folder)
	return err
}

func (r *MongoFolderRepository) Update(ctx context.Context, folder *domain.WikiFolder) error {
	folder.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": folder.ID}, folder)
	return err
}

func (r *MongoFolderRepository) SoftDelete(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoFolderRepository) GetByID(ctx context.Context, id string) (*domain.WikiFolder, error) {
	return r.findOne(ctx, bson.M{"_id": id, "isDeleted": false})
}

func (r *MongoFolderRepository) GetByPath(ctx context.Context, path string) (*domain.WikiFolder, error) {
	return r.findOne(ctx, bson.M{"path": path, "isDeleted": false})
}

func (r *MongoFolderRepository) GetByParentID(ctx context.Context, parentID string) ([]domain.WikiFolder, error) {
	return r.findMany(ctx, bson.M{"parentFolderId": parentID, "isDeleted": false})
}

// GetRootFolders matches folders whose parent pointer is absent or empty.
func (r *MongoFolderRepository) GetRootFolders(ctx context.Context) ([]domain.WikiFolder, error) {
	filter := bson.M{
		"isDeleted":      false,
		"parentFolderId": bson.M{"$in": bson.A{nil, ""}},
	}
	return r.findMany(ctx, filter)
}

// GetDescendants walks the subtree level by level. The visited set guards
// against parent-pointer cycles, which nothing prevents at write time.
func (r *MongoFolderRepository) GetDescendants(ctx context.Context, folderID string) ([]domain.WikiFolder, error) {
	visited := map[string]bool{folderID: true}
	descendants := []domain.WikiFolder{}
	frontier := []string{folderID}

	for len(frontier) > 0 {
		children, err := r.findMany(ctx, bson.M{
			"parentFolderId": bson.M{"$in": frontier},
			"isDeleted":      false,
		})
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for i := range children {
			if visited[children[i].ID] {
				continue
			}
			visited[children[i].ID] = true
			descendants = append(descendants, children[i])
			frontier = append(frontier, children[i].ID)
		}
	}
	return descendants, nil
}

// GetAncestors returns the chain root-first, excluding the folder itself.
// A dangling parent pointer ends the walk instead of failing it.
func (r *MongoFolderRepository) GetAncestors(ctx context.Context, folderID string) ([]domain.WikiFolder, error) {
	current, err := r.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return []domain.WikiFolder{}, nil
	}

	visited := map[string]bool{current.ID: true}
	ancestors := []domain.WikiFolder{}
	parentID := current.ParentFolderID
	for parentID != "" && !visited[parentID] {
		parent, err := r.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		visited[parent.ID] = true
		ancestors = append([]domain.WikiFolder{*parent}, ancestors...)
		parentID = parent.ParentFolderID
	}
	return ancestors, nil
}

func (r *MongoFolderRepository) IsPathUnique(ctx context.Context, path, excludeFolderID string) (bool, error) {
	filter := bson.M{"path": path, "isDeleted": false}
	if excludeFolderID != "" {
		filter["_id"] = bson.M{"$ne": excludeFolderID}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	return count == 0, err
}

func (r *MongoFolderRepository) HasChildren(ctx context.Context, folderID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"parentFolderId": folderID, "isDeleted": false})
	return count > 0, err
}

func (r *MongoFolderRepository) findOne(ctx context.Context, filter bson.M) (*domain.WikiFolder, error) {
	var folder domain.WikiFolder
	err := r.collection.FindOne(ctx, filter).Decode(&folder)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// findMany sorts by sortOrder then name so siblings come back in display
// order.
func (r *MongoFolderRepository) findMany(ctx context.Context, filter bson.M) ([]domain.WikiFolder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	folders := []domain.WikiFolder{}
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

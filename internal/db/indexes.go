package db

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes performs the one-time store initialization at startup,
// before any repository access. CreateMany is idempotent for identical
// index specs, so re-running on boot is safe.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexSets := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "adfsId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		WikiPagesCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "folderId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}}},
		},
		WikiFoldersCollection: {
			{Keys: bson.D{{Key: "path", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "parentFolderId", Value: 1}}},
		},
		CommentsCollection: {
			{Keys: bson.D{{Key: "wikiPageId", Value: 1}}},
			{Keys: bson.D{{Key: "authorId", Value: 1}}},
			{Keys: bson.D{{Key: "parentCommentId", Value: 1}}},
			{Keys: bson.D{{Key: "mentions", Value: 1}}},
		},
	}

	for collection, indexes := range indexSets {
		if _, err := Database.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}

	log.Info().Msg("mongo indexes ensured")
	return nil
}

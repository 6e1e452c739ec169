package db

import (
	"context"
	"time"

	"wikiarea-backend/internal/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the wikiarea database.
const (
	UsersCollection       = "users"
	WikiPagesCollection   = "wiki_pages"
	WikiFoldersCollection = "wiki_folders"
	CommentsCollection    = "comments"
)

var (
	client   *mongo.Client
	Database *mongo.Database
)

func ConnectDb() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to mongodb")
		return err
	}
	if err := c.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("mongodb not reachable")
		return err
	}

	client = c
	Database = c.Database(config.AppConfig.MongoDatabase)
	log.Info().Str("database", config.AppConfig.MongoDatabase).Msg("mongodb connected")

	return nil
}

func CloseDb() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("failed to close mongodb connection")
		return
	}
	log.Info().Msg("mongodb connection closed")
}

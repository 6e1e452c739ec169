package redis

import (
	"context"

	"wikiarea-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Ctx = context.Background()
var RedisClient *redis.Client

// InitRedis connects to the configured Redis instance. Redis only backs the
// listing cache, so an unreachable server degrades to cache-off rather than
// failing startup.
func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisAddress,
	})
	if _, err := RedisClient.Ping(Ctx).Result(); err != nil {
		log.Warn().Err(err).Str("addr", config.AppConfig.RedisAddress).
			Msg("redis not available, running without listing cache")
		RedisClient = nil
		return
	}

	log.Info().Str("addr", config.AppConfig.RedisAddress).Msg("redis connected")
}

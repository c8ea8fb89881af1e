package database

import (
	"context"
	"log"
	"time"

	"schoolerp_backend/internals/configs"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis is a no-op when REDIS_URL is empty.
func ConnectRedis() {
	url := configs.GetEnv("REDIS_URL")
	if url == "" {
		log.Println("⚠️ REDIS_URL not set, token blacklist falls back to the database")
		return
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("❌ invalid REDIS_URL: %v", err)
		return
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("❌ redis ping failed, continuing without redis: %v", err)
		_ = client.Close()
		return
	}
	Redis = client
	log.Println("✅ Redis connected.")
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}

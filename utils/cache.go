// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"slotbooker/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (booking list cache).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for session caching.
	AuthCacheClient *redis.Client
	// OTPCacheClient is the dedicated client for pending OTP codes.
	OTPCacheClient *redis.Client
)

// InitRedis initializes all Redis clients up front so a misconfigured
// address fails at startup rather than on first use.
func InitRedis() {
	InitCache()
	InitAuthCache()
	InitOTPCache()
}

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func pingOrDie(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	pingOrDie(CacheClient, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for session caching.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	pingOrDie(AuthCacheClient, "Auth Cache")
}

// GetAuthCacheClient returns the Redis client for session caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitOTPCache initializes the Redis client for pending OTP codes.
func InitOTPCache() {
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	pingOrDie(OTPCacheClient, "OTP Cache")
}

// GetOTPCacheClient returns the Redis client for pending OTP codes.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		InitOTPCache()
	}
	return OTPCacheClient
}

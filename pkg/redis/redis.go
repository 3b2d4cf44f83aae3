package redis

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	GetEmbedding(ctx context.Context, model string, text string) ([]float32, error)
	SetEmbedding(ctx context.Context, model string, text string, vector []float32, expiration time.Duration) error
}

var ErrCacheMiss = errors.New("embedding not cached")

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func embeddingKey(model string, text string) string {
	sum := sha256.Sum256([]byte(model + ":" + text))
	return fmt.Sprintf("emb:%x", sum[:16])
}

func (r *redisClient) GetEmbedding(ctx context.Context, model string, text string) ([]float32, error) {
	key := embeddingKey(model, text)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting embedding for key %s: %v", key, err))
		return nil, err
	}

	var vector []float32
	if err := jsoniter.Unmarshal([]byte(val), &vector); err != nil {
		logrus.Error(fmt.Sprintf("Error decoding cached embedding for key %s: %v", key, err))
		return nil, err
	}

	return vector, nil
}

func (r *redisClient) SetEmbedding(ctx context.Context, model string, text string, vector []float32, expiration time.Duration) error {
	key := embeddingKey(model, text)

	encoded, err := jsoniter.Marshal(vector)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, encoded, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching embedding for key %s: %v", key, err))
		return err
	}

	return nil
}

// Package repository opens the configured conversation log backend.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	goredis "github.com/redis/go-redis/v9"

	"assistant-kit/config"
	"assistant-kit/internal/conversation"
	"assistant-kit/internal/conversation/repository/dynamodb"
	"assistant-kit/internal/conversation/repository/memory"
	"assistant-kit/internal/conversation/repository/redis"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// CloseFunc releases connections held by a backend.
type CloseFunc func() error

func noopClose() error { return nil }

// Open builds the named backend from cfg. An empty name uses cfg.Memory.Backend.
func Open(ctx context.Context, backend string, cfg *config.Config) (conversation.Log, CloseFunc, error) {
	if backend == "" {
		backend = cfg.Memory.Backend
	}

	ttl, err := parseTTL(cfg.Memory.SessionTTL)
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case BackendMemory, "":
		return memory.New(cfg.Memory.MaxSessions, ttl), noopClose, nil

	case BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		log, err := redis.New(client, cfg.Redis.KeyPrefix, ttl)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return log, client.Close, nil

	case BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		client := awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
			if cfg.DynamoDB.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
			}
		})
		log, err := dynamodb.New(client, cfg.DynamoDB.TableName, ttl)
		if err != nil {
			return nil, nil, err
		}
		return log, noopClose, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", conversation.ErrUnknownBackend, backend)
	}
}

func parseTTL(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("memory.session_ttl: %w", err)
	}
	return ttl, nil
}

package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kapu/social-growth-advisor/internal/constants"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore keeps session state as JSON strings with a sliding TTL.
// Updates use WATCH/MULTI so concurrent writers of one session never interleave.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

func NewRedisStore(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisConfig.ReadyTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStoreError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return NewRedisStoreFromClient(client, ttl, logger), nil
}

func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: constants.SessionConfig.KeyPrefix,
		logger: logger,
	}
}

func (s *RedisStore) Kind() string {
	return "redis"
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	key := s.key(id)
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &domain.SessionState{}, nil
	}
	if err != nil {
		s.logger.Error("Session get failed", zap.String("key", key), zap.Error(err))
		return nil, errors.NewStoreError("get failed", "get", key, err)
	}

	var state domain.SessionState
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		s.logger.Error("Session unmarshal failed", zap.String("key", key), zap.Error(err))
		return nil, errors.NewStoreError("unmarshal failed", "get", key, err)
	}
	return &state, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, fn MutateFunc) (*domain.SessionState, error) {
	key := s.key(id)
	var (
		result *domain.SessionState
		fnErr  error
	)

	txf := func(tx *redis.Tx) error {
		var state domain.SessionState

		value, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
		case err != nil:
			return errors.NewStoreError("get failed", "update", key, err)
		default:
			if err := json.Unmarshal([]byte(value), &state); err != nil {
				return errors.NewStoreError("unmarshal failed", "update", key, err)
			}
		}

		if err := fn(&state); err != nil {
			fnErr = err
			return err
		}
		state.UpdatedAt = time.Now()

		data, err := json.Marshal(&state)
		if err != nil {
			return errors.NewStoreError("marshal failed", "update", key, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = &state
		return nil
	}

	for attempt := 0; attempt < constants.SessionConfig.MaxTxRetries; attempt++ {
		fnErr = nil
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if stderrors.Is(err, redis.TxFailedErr) {
			s.logger.Debug("Session update conflict, retrying", zap.String("key", key), zap.Int("attempt", attempt+1))
			continue
		}

		if fnErr != nil && stderrors.Is(err, fnErr) {
			return nil, err
		}

		s.logger.Error("Session update failed", zap.String("key", key), zap.Error(err))
		var storeErr *errors.StoreError
		if stderrors.As(err, &storeErr) {
			return nil, err
		}
		return nil, errors.NewStoreError("update failed", "update", key, err)
	}

	return nil, errors.NewStoreError("too many concurrent updates", "update", key, redis.TxFailedErr)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

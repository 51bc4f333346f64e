package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kapu/social-growth-advisor/internal/constants"
	"github.com/kapu/social-growth-advisor/internal/domain"
	apperrors "github.com/kapu/social-growth-advisor/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStoreFromClient(client, 10*time.Minute, zap.NewNop()), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Update(ctx, "abc", func(s *domain.SessionState) error {
		s.Input = domain.SuggestionInput{AccountDescription: "Travel photography"}
		s.Bundle = &domain.SuggestionBundle{
			Hashtags:    []domain.HashtagSuggestion{{Hashtag: "#travel", Reason: "broad reach"}},
			GrowthIdeas: []domain.GrowthIdea{{Title: "Reels", Description: "Post weekly reels"}},
		}
		return nil
	})
	require.NoError(t, err)

	key := constants.SessionConfig.KeyPrefix + "abc"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	state, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Travel photography", state.Input.AccountDescription)
	require.NotNil(t, state.Bundle)
	assert.Equal(t, "#travel", state.Bundle.Hashtags[0].Hashtag)
	assert.False(t, state.UpdatedAt.IsZero())
}

func TestRedisStoreMissingKeyIsEmpty(t *testing.T) {
	store, _ := newTestRedisStore(t)

	state, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionInput{}, state.Input)
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Update(ctx, "abc", func(s *domain.SessionState) error {
		s.Error = "gone soon"
		return nil
	})
	require.NoError(t, err)

	mr.FastForward(11 * time.Minute)

	state, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, state.Error)
}

func TestRedisStoreCorruptValueIsStoreError(t *testing.T) {
	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set(constants.SessionConfig.KeyPrefix+"bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)

	var storeErr *apperrors.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, 500, apperrors.StatusCodeOf(err, 0))
}

func TestRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStoreFromClient(client, time.Minute, zap.NewNop())

	mr.Close()

	_, err := store.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))

	_, err = store.Update(context.Background(), "abc", func(*domain.SessionState) error { return nil })
	var storeErr *apperrors.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestRedisStoreUpdatePassesMutateErrorThrough(t *testing.T) {
	store, _ := newTestRedisStore(t)
	boom := apperrors.NewAppError("nope", apperrors.CodeBusy, 409, nil)

	_, err := store.Update(context.Background(), "abc", func(*domain.SessionState) error { return boom })
	assert.Same(t, boom, err)
}

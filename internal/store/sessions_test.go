package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestKV(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKV(client)
}

func TestSessionStoreCreateAndGet(t *testing.T) {
	_, kv := setupTestKV(t)
	sessions := NewSessionStore(kv)
	ctx := context.Background()

	token, err := sessions.Create(ctx, Session{UserID: 7, Email: "admin@kesif.agency", Role: "super_admin"})
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 bytes hex

	sess, err := sessions.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, "admin@kesif.agency", sess.Email)
	assert.Equal(t, "super_admin", sess.Role)
	assert.False(t, sess.CreatedAt.IsZero())
}

func TestSessionStoreGetMissing(t *testing.T) {
	_, kv := setupTestKV(t)
	sessions := NewSessionStore(kv)

	sess, err := sessions.Get(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, sess)

	sess, err = sessions.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionStoreExpiry(t *testing.T) {
	mr, kv := setupTestKV(t)
	sessions := NewSessionStore(kv)
	ctx := context.Background()

	token, err := sessions.Create(ctx, Session{UserID: 1, Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)

	mr.FastForward(24*time.Hour + time.Minute)

	sess, err := sessions.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionStoreDelete(t *testing.T) {
	_, kv := setupTestKV(t)
	sessions := NewSessionStore(kv)
	ctx := context.Background()

	token, err := sessions.Create(ctx, Session{UserID: 2, Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)

	require.NoError(t, sessions.Delete(ctx, token))

	sess, err := sessions.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// 重复删除不报错
	require.NoError(t, sessions.Delete(ctx, token))
}

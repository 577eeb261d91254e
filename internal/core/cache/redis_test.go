package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrLoad_MissThenSet(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb)

	mock.ExpectGet("k").RedisNil()
	mock.ExpectSet("k", []byte("v"), time.Minute).SetVal("OK")

	loads := 0
	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		loads++
		return []byte("v"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), b)
	assert.Equal(t, 1, loads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrLoad_Hit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb)

	mock.ExpectGet("k").SetVal("cached")

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		t.Fatal("load should not be called on cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), b)
}

func TestCache_GetOrLoad_LoadError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb)

	mock.ExpectGet("k").RedisNil()

	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestCache_Invalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb)

	mock.ExpectDel("a", "b").SetVal(2)
	c.Invalidate(context.Background(), "a", "b")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoadJSON(t *testing.T) {
	type payload struct {
		N int `json:"n"`
	}
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb)

	mock.ExpectGet("j").RedisNil()
	mock.ExpectSet("j", []byte(`{"n":7}`), time.Minute).SetVal("OK")

	out, err := GetOrLoadJSON[payload](c, context.Background(), "j", time.Minute, func(context.Context) (*payload, error) {
		return &payload{N: 7}, nil
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 7, out.N)

	// 命中后直接反序列化
	mock.ExpectGet("j").SetVal(`{"n":7}`)
	out, err = GetOrLoadJSON[payload](c, context.Background(), "j", time.Minute, func(context.Context) (*payload, error) {
		return nil, errors.New("should not load")
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.N)
}

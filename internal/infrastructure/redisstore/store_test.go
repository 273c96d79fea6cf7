package redisstore_test

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/farmacia-pos/internal/infrastructure/redisstore"
)

func TestStore_PrefijoPorDefecto(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	assert.Equal(t, "farmacia:farmacia_sales", redisstore.NewStore(rdb, "").Key("farmacia_sales"))
	assert.Equal(t, "pos1:farmacia_sales", redisstore.NewStore(rdb, "pos1:").Key("farmacia_sales"))
}

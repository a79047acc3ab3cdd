package cache

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	redis_store "github.com/eko/gocache/store/redis/v4"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var S store.StoreInterface

func NewStore() error {
	var err error
	switch driver := viper.GetString("cache.driver"); driver {
	case "", "memory":
		S, err = NewMemoryStore()
	case "redis":
		S, err = NewRedisStore(viper.GetString("cache.redis_addr"), viper.GetString("cache.redis_password"))
	default:
		return fmt.Errorf("unsupported cache driver: %s", driver)
	}
	if err == nil {
		log.Info().Str("driver", S.GetType()).Msg("Cache store is ready.")
	}
	return err
}

// memoryStore waits for ristretto's buffered writes, so a value is readable once Set returns.
type memoryStore struct {
	*ristretto_store.RistrettoStore
	client *ristretto.Cache
}

func (v *memoryStore) Set(ctx context.Context, key any, value any, options ...store.Option) error {
	if err := v.RistrettoStore.Set(ctx, key, value, options...); err != nil {
		return err
	}
	v.client.Wait()
	return nil
}

func NewMemoryStore() (store.StoreInterface, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 27,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create ristretto cache: %v", err)
	}
	return &memoryStore{
		RistrettoStore: ristretto_store.NewRistretto(client),
		client:         client,
	}, nil
}

func NewRedisStore(addr, password string) (store.StoreInterface, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect redis: %v", err)
	}
	return redis_store.NewRedis(client), nil
}

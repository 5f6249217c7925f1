package cache

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/ristretto/v2"
)

var ErrRejected = errors.New("cache rejected value")

var cache *ristretto.Cache[string, any]

func init() {
	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1e5,
		MaxCost:     1e6,
		BufferItems: 64,
	})
	if err != nil {
		log.Fatalf("failed to create ristretto cache: %v", err)
	}
	cache = c
}

// Set stores a callback payload. Entries expire so abandoned keyboards
// don't pin memory.
func Set(key string, value any) error {
	if ok := cache.SetWithTTL(key, value, 1, 30*time.Minute); !ok {
		return ErrRejected
	}
	cache.Wait()
	return nil
}

func Get[T any](key string) (T, bool) {
	v, ok := cache.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	vT, ok := v.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return vT, true
}

func Del(key string) {
	cache.Del(key)
}

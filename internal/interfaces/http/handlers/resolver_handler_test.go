package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"wrld-names.backend/internal/domain/entities"
	"wrld-names.backend/internal/usecases"
)

func recordFixture(name, key, value string, ttl int64) *entities.Record {
	return &entities.Record{
		Name:  name,
		Type:  entities.RecordTypeString,
		Key:   key,
		Value: value,
		TTL:   ttl,
	}
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	c.sets++
}

func (c *memoryCache) Del(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
}

func newResolverRouter(s *testStack, cache usecases.RecordCache) *gin.Engine {
	h := NewResolverHandler(usecases.NewResolverUsecase(s.registry, cache))
	r := gin.New()
	r.GET("/resolve/:name", h.ResolveAddress)
	r.GET("/resolve/:name/:type", h.ListKeys)
	r.GET("/resolve/:name/:type/:key", h.Resolve)
	return r
}

func TestResolverHandler_ResolveAddress(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	r := newResolverRouter(s, nil)

	w := doJSON(t, r, http.MethodGet, "/resolve/ArkDev", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), testUserAddr)

	w = doJSON(t, r, http.MethodGet, "/resolve/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolverHandler_ResolveTypedRecord(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	require.NoError(t, s.records.Upsert(context.Background(), recordFixture("arkdev", "bio", "hello", 300)))
	r := newResolverRouter(s, nil)

	w := doJSON(t, r, http.MethodGet, "/resolve/arkdev/string/bio", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"value":"hello"`)

	w = doJSON(t, r, http.MethodGet, "/resolve/arkdev/bogus/bio", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolverHandler_ListKeys(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	r := newResolverRouter(s, nil)

	w := doJSON(t, r, http.MethodGet, "/resolve/arkdev/address", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"keys":["evm_default"]`)
}

func TestResolverHandler_CachesPositiveTTL(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	require.NoError(t, s.records.Upsert(context.Background(), recordFixture("arkdev", "bio", "hello", 300)))
	require.NoError(t, s.records.Upsert(context.Background(), recordFixture("arkdev", "tmp", "x", 0)))

	cache := newMemoryCache()
	r := newResolverRouter(s, cache)

	w := doJSON(t, r, http.MethodGet, "/resolve/arkdev/string/bio", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, cache.sets)
	require.Contains(t, cache.items, "resolve:string:arkdev:bio")

	// Second read is served from the cache.
	w = doJSON(t, r, http.MethodGet, "/resolve/arkdev/string/bio", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, cache.sets)

	// Zero TTL records never enter the cache.
	w = doJSON(t, r, http.MethodGet, "/resolve/arkdev/string/tmp", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, cache.items, "resolve:string:arkdev:tmp")
}

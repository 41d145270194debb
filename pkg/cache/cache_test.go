package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get(key) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get(key) = %q, want %q", data, "value")
	}
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMemoryCache(clock)

	_ = c.Set(ctx, "url", []byte("a"), TTLResponse)

	clock.Advance(59 * time.Minute)
	if _, hit, _ := c.Get(ctx, "url"); !hit {
		t.Fatal("entry younger than TTL should hit")
	}

	clock.Advance(time.Minute)
	if _, hit, _ := c.Get(ctx, "url"); hit {
		t.Fatal("entry at TTL should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be dropped, Len() = %d", c.Len())
	}
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMemoryCache(clock)

	_ = c.Set(ctx, "k", []byte("v"), 0)
	clock.Advance(365 * 24 * time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("zero TTL entry should never expire")
	}
}

func TestMemoryCache_Replace(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMemoryCache(clock)

	_ = c.Set(ctx, "k", []byte("old"), time.Hour)
	clock.Advance(30 * time.Minute)
	_ = c.Set(ctx, "k", []byte("new"), time.Hour)
	clock.Advance(45 * time.Minute)

	data, hit, _ := c.Get(ctx, "k")
	if !hit || string(data) != "new" {
		t.Errorf("Get(k) = %q, %v; want refreshed entry", data, hit)
	}
}

func TestMemoryCache_SetCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, time.Hour)
	buf[0] = 'z'

	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("cache aliased caller buffer: %q", data)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)

	_ = c.Set(ctx, "k", []byte("v"), time.Hour)
	_ = c.Delete(ctx, "k")
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			_ = c.Set(ctx, key, []byte(key), time.Hour)
			_, _, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if c.Len() != 16 {
		t.Errorf("Len() = %d, want 16", c.Len())
	}
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c, err := NewFileCacheWithClock(t.TempDir(), clock)
	if err != nil {
		t.Fatalf("NewFileCacheWithClock error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "https://api.umd.io/v1/courses/semesters", []byte(`["202508"]`), TTLSemesters); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "https://api.umd.io/v1/courses/semesters")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != `["202508"]` {
		t.Errorf("Get = %q", data)
	}

	clock.Advance(TTLSemesters)
	if _, hit, _ := c.Get(ctx, "https://api.umd.io/v1/courses/semesters"); hit {
		t.Error("expired file entry should miss")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), time.Hour)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(ctx, RedisOptions{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	mr.FastForward(2 * time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired redis entry should miss")
	}

	_ = c.Set(ctx, "d", []byte("v"), 0)
	_ = c.Delete(ctx, "d")
	if _, hit, _ := c.Get(ctx, "d"); hit {
		t.Error("deleted redis entry should miss")
	}
}

func TestRedisCache_ConnectError(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Error("NewRedisCache should fail when redis is unreachable")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	got := k.HTTPKey("umdio:", "https://api.umd.io/v1/courses/CMSC216")
	want := "http:umdio::https://api.umd.io/v1/courses/CMSC216"
	if got != want {
		t.Errorf("HTTPKey() = %q, want %q", got, want)
	}

	if k.HTTPKey("umdio:", "/courses?dept_id=CMSC") == k.HTTPKey("umdio:", "/courses?dept_id=MATH") {
		t.Error("distinct URLs must produce distinct keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "coursefinder:")
	if got := scoped.HTTPKey("umdio:", "/x"); got != "coursefinder:http:umdio::/x" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.HTTPKey("test:", "key"); key != "prefix:http:test::key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

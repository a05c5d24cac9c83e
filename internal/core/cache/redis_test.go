package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func constLoad(v string, calls *atomic.Int32) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte(v), nil
	}
}

func TestCache_MissLoadsAndSets(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	var calls atomic.Int32

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	b, err := c.GetOrLoad(ctx, "k", time.Minute, constLoad("v1", &calls))
	if err != nil || string(b) != "v1" {
		t.Fatalf("first load: %q %v", b, err)
	}
	if got, _ := mr.Get("k"); got != "v1" {
		t.Fatalf("expected value written back, got %q", got)
	}
	if ttl := mr.TTL("k"); ttl != time.Minute {
		t.Fatalf("ttl %v", ttl)
	}

	b, err = c.GetOrLoad(ctx, "k", time.Minute, constLoad("v2", &calls))
	if err != nil || string(b) != "v1" {
		t.Fatalf("hit: %q %v", b, err)
	}
	if calls.Load() != 1 {
		t.Fatalf("hit must not load, loads=%d", calls.Load())
	}
}

func TestCache_LoadErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("failed load must not be cached")
	}
}

func TestCache_RedisDownFallsThrough(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	var calls atomic.Int32

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, constLoad("db", &calls))
	if err != nil || string(b) != "db" {
		t.Fatalf("expected fall-through to load, got %q %v", b, err)
	}
	if calls.Load() != 1 {
		t.Fatalf("loads=%d", calls.Load())
	}
}

func TestCache_DeleteClearsKey(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	var calls atomic.Int32

	if _, err := c.GetOrLoad(ctx, "k", time.Minute, constLoad("v1", &calls)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("key still present")
	}
	b, _ := c.GetOrLoad(ctx, "k", time.Minute, constLoad("v2", &calls))
	if string(b) != "v2" || calls.Load() != 2 {
		t.Fatalf("expected reload after delete, got %q loads=%d", b, calls.Load())
	}
	if err := c.Delete(ctx); err != nil {
		t.Fatalf("delete with no keys: %v", err)
	}
}

func TestCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	c, _ := newTestCache(t)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(context.Context) ([]byte, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []byte("v"), nil
	}

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.GetOrLoad(context.Background(), "k", time.Minute, load)
			if err == nil && string(b) != "v" {
				err = errors.New("unexpected value " + string(b))
			}
			errs <- err
		}()
	}
	<-started
	time.Sleep(100 * time.Millisecond) // let the others join the flight
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one shared load, got %d", calls.Load())
	}
}

// A read that started before a write must neither answer the read-back
// after the write nor overwrite the fresh value in Redis.
func TestCache_DeleteDetachesLoadInFlight(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	staleDone := make(chan []byte, 1)
	go func() {
		b, _ := c.GetOrLoad(ctx, "project:1", time.Minute, func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("old"), nil
		})
		staleDone <- b
	}()
	<-started

	// the write lands, then invalidates
	if err := c.Delete(ctx, "project:1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var calls atomic.Int32
	b, err := c.GetOrLoad(ctx, "project:1", time.Minute, constLoad("new", &calls))
	if err != nil || string(b) != "new" {
		t.Fatalf("read-back after write got %q %v", b, err)
	}

	close(release)
	if got := <-staleDone; string(got) != "old" {
		t.Fatalf("first reader got %q", got)
	}
	if got, _ := mr.Get("project:1"); got != "new" {
		t.Fatalf("stale load overwrote cache: %q", got)
	}
}

func TestCache_CanceledCallerDoesNotFailOthers(t *testing.T) {
	c, _ := newTestCache(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var loadErr atomic.Value
	load := func(lctx context.Context) ([]byte, error) {
		close(started)
		<-release
		if err := lctx.Err(); err != nil {
			loadErr.Store(err)
		}
		return []byte("v"), nil
	}

	cctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(cctx, "k", time.Minute, load)
		first <- err
	}()
	<-started

	second := make(chan []byte, 1)
	go func() {
		b, _ := c.GetOrLoad(context.Background(), "k", time.Minute, load)
		second <- b
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled caller got %v", err)
	}
	close(release)
	if b := <-second; string(b) != "v" {
		t.Fatalf("joined caller got %q", b)
	}
	if v := loadErr.Load(); v != nil {
		t.Fatalf("load saw caller cancellation: %v", v)
	}
}

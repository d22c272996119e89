package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache()

	c.Set("key1", "value1", time.Minute)

	value, ok := c.Get("key1")
	if !ok {
		t.Fatal("Expected key1 to be present")
	}
	if value != "value1" {
		t.Errorf("Expected 'value1', got '%v'", value)
	}
}

func TestCacheGetMissing(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected missing key to report absent")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache()

	c.Set("short", 42, 10*time.Millisecond)

	if _, ok := c.Get("short"); !ok {
		t.Fatal("Expected entry to be readable before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected entry to expire")
	}
	if c.Size() != 0 {
		t.Errorf("Expected expired entry to be dropped, size is %d", c.Size())
	}
}

func TestCacheOverwriteResetsTTL(t *testing.T) {
	c := NewCache()

	c.Set("key", "old", 10*time.Millisecond)
	c.Set("key", "new", time.Minute)

	time.Sleep(20 * time.Millisecond)

	value, ok := c.Get("key")
	if !ok {
		t.Fatal("Expected overwritten entry to survive the original TTL")
	}
	if value != "new" {
		t.Errorf("Expected 'new', got '%v'", value)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()

	c.Set("key", "value", time.Minute)
	c.Invalidate("key")

	if _, ok := c.Get("key"); ok {
		t.Error("Expected invalidated key to be absent")
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache()

	c.Set(KeyFeedAll, 1, time.Minute)
	c.Set(KeyFeedSocial, 2, time.Minute)
	c.Set(KeyFeedNews, 3, time.Minute)
	c.Set(KeyTrending, 4, time.Minute)

	removed := c.InvalidatePrefix(FeedKeyPrefix)
	if removed != 3 {
		t.Errorf("Expected 3 entries removed, got %d", removed)
	}

	if _, ok := c.Get(KeyFeedAll); ok {
		t.Error("Expected feed keys to be invalidated")
	}
	if _, ok := c.Get(KeyTrending); !ok {
		t.Error("Expected trending key to survive")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Clear()

	if c.Size() != 0 {
		t.Errorf("Expected empty cache, size is %d", c.Size())
	}
}

func TestCacheTTLRemaining(t *testing.T) {
	c := NewCache()

	c.Set("key", "value", time.Minute)

	remaining := c.TTLRemaining("key")
	if remaining <= 0 || remaining > time.Minute {
		t.Errorf("Expected remaining TTL within (0, 1m], got %v", remaining)
	}

	if got := c.TTLRemaining("missing"); got != 0 {
		t.Errorf("Expected zero TTL for missing key, got %v", got)
	}
}

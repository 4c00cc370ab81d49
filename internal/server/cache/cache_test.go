package cache

import (
	"sync"
	"testing"
	"time"
)

// TestCache_BasicOperations tests Get, Set, and Delete.
func TestCache_BasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	t.Run("Set and Get", func(t *testing.T) {
		c.Set("key1", "value1")

		val, found := c.Get("key1")
		if !found {
			t.Error("expected key1 to be found")
		}
		if val != "value1" {
			t.Errorf("expected value1, got %v", val)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, found := c.Get("nonexistent"); found {
			t.Error("expected nonexistent key to not be found")
		}
	})

	t.Run("Set and Delete", func(t *testing.T) {
		c.Set("key2", "value2")
		c.Delete("key2")

		if _, found := c.Get("key2"); found {
			t.Error("expected key2 to be deleted")
		}
	})
}

// TestCache_SetWithTTL tests custom TTL expiry.
func TestCache_SetWithTTL(t *testing.T) {
	c := New(5*time.Minute, 10*time.Millisecond)
	c.SetWithTTL("short", "v", 20*time.Millisecond)

	if _, found := c.Get("short"); !found {
		t.Fatal("expected key to be present before expiry")
	}
	time.Sleep(50 * time.Millisecond)
	if _, found := c.Get("short"); found {
		t.Error("expected key to expire")
	}
}

// TestCache_Clear tests flushing and stats.
func TestCache_Clear(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if got := c.GetStats().ItemCount; got != 2 {
		t.Errorf("expected 2 items, got %d", got)
	}
	c.Clear()
	if got := c.ItemCount(); got != 0 {
		t.Errorf("expected 0 items after Clear, got %d", got)
	}
}

// TestKey tests that keys are scoped to a catalog generation.
func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		gen   uint64
		parts []string
		want  string
	}{
		{"no parts", 3, nil, "g3"},
		{"list query", 1, []string{"logs", "level=ERROR"}, "g1|logs|level=ERROR"},
		{"empty part kept", 7, []string{"stats", ""}, "g7|stats|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.gen, tt.parts...); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}

	if Key(1, "logs") == Key(2, "logs") {
		t.Error("expected different generations to produce different keys")
	}
}

// TestCache_Concurrent tests concurrent access.
func TestCache_Concurrent(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := Key(uint64(n%3), "logs")
			c.Set(key, n)
			c.Get(key)
			if n%10 == 0 {
				c.Clear()
			}
		}(i)
	}
	wg.Wait()
}

package utils

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(10)
	c.Set("k", uint(42), time.Minute)

	if got := c.Get("k"); got != uint(42) {
		t.Errorf("Get = %v, want 42", got)
	}
	if got := c.Get("missing"); got != nil {
		t.Errorf("Get missing key = %v, want nil", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10)
	c.Set("k", "v", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if got := c.Get("k"); got != nil {
		t.Errorf("expired entry still returned: %v", got)
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache(10)
	c.Set("k", "v", time.Minute)
	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Errorf("deleted entry still returned: %v", got)
	}
}

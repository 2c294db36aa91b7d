package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("10.0.0.1")
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retry := rl.Allow("10.0.0.1")
	if ok {
		t.Fatal("fourth request should be rejected")
	}
	if retry != time.Minute {
		t.Errorf("retry window = %v, want %v", retry, time.Minute)
	}
}

func TestAllowIsolatesClients(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Minute)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first client should be allowed")
	}
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Fatal("second client should have its own window")
	}
	if ok, _ := rl.Allow("10.0.0.1"); ok {
		t.Fatal("first client should now be limited")
	}
}

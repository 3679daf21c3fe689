package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowWithinBurst(t *testing.T) {
	l := New(5)

	for i := 0; i < 5; i++ {
		if !l.Allow() {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	if l.Allow() {
		t.Error("request beyond burst allowed immediately")
	}
}

func TestWaitRefills(t *testing.T) {
	l := New(100)

	// Drain the bucket.
	for l.Allow() {
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Errorf("Wait after drain = %v, want nil", err)
	}
}

func TestWaitCancelled(t *testing.T) {
	l := New(1)
	for l.Allow() {
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("Wait with cancelled context = nil, want error")
	}
}

func TestNilLimiter(t *testing.T) {
	var l *Limiter

	if !l.Allow() {
		t.Error("nil limiter denied a request")
	}
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter Wait = %v, want nil", err)
	}
}

func TestDefaultRates(t *testing.T) {
	if got := NewPublic(); got == nil {
		t.Fatal("NewPublic returned nil")
	}
	if got := NewPrivate(); got == nil {
		t.Fatal("NewPrivate returned nil")
	}
}

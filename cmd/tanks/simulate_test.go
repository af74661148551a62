package main

import (
	"context"
	"testing"
)

func TestSimulateDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := simulate(ctx, 9, 1200)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	b, err := simulate(ctx, 9, 1200)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if a != b {
		t.Errorf("simulate(9) differs between runs:\n%+v\n%+v", a, b)
	}

	other, _ := simulate(ctx, 10, 1200)
	if other.Digest == a.Digest {
		t.Errorf("seeds 9 and 10 end with the same digest %016x", a.Digest)
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := simulate(ctx, 1, 100); err == nil {
		t.Error("simulate() with a cancelled context should fail")
	}
}

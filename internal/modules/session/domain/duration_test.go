package domain_test

import (
	"math/rand/v2"
	"testing"

	"laprun/internal/modules/session/domain"
)

func TestCalculateDurationZeroGrowthIsIdentity(t *testing.T) {
	t.Parallel()
	for _, base := range []int{1, 30, 900, domain.MaxDurationSeconds} {
		for n := 1; n <= 20; n++ {
			if got := domain.CalculateDuration(base, 0, n); got != base {
				t.Fatalf("CalculateDuration(%d, 0, %d) = %d", base, n, got)
			}
		}
	}
}

func TestCalculateDurationGeometricGrowth(t *testing.T) {
	t.Parallel()
	want := []int{100, 110, 121}
	for i, w := range want {
		if got := domain.CalculateDuration(100, 10, i+1); got != w {
			t.Fatalf("occurrence %d: expected %d, got %d", i+1, w, got)
		}
	}
	if got := domain.CalculateDuration(300, -10, 2); got != 270 {
		t.Fatalf("expected decay to 270, got %d", got)
	}
	// 60 * 1.1^3 = 79.86 rounds up.
	if got := domain.CalculateDuration(60, 10, 4); got != 80 {
		t.Fatalf("expected 80, got %d", got)
	}
	// 5 * 1.5 = 7.5 rounds half away from zero.
	if got := domain.CalculateDuration(5, 50, 2); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}

func TestCalculateDurationClamps(t *testing.T) {
	t.Parallel()
	if got := domain.CalculateDuration(1, -90, 5); got != domain.MinDurationSeconds {
		t.Fatalf("expected min clamp, got %d", got)
	}
	if got := domain.CalculateDuration(80000, 99, 3); got != domain.MaxDurationSeconds {
		t.Fatalf("expected max clamp, got %d", got)
	}
	// Each occurrence is computed from the base, never from the previous value.
	if got := domain.CalculateDuration(50000, 50, 2); got != 75000 {
		t.Fatalf("expected 75000, got %d", got)
	}
	if got := domain.CalculateDuration(50000, -50, 4); got != 6250 {
		t.Fatalf("expected 6250, got %d", got)
	}
}

func TestCalculateDurationAlwaysWithinBounds(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5000; i++ {
		base := 1 + rng.IntN(domain.MaxDurationSeconds)
		growth := rng.IntN(199) - 99
		n := 1 + rng.IntN(60)
		got := domain.CalculateDuration(base, growth, n)
		if got < domain.MinDurationSeconds || got > domain.MaxDurationSeconds {
			t.Fatalf("CalculateDuration(%d, %d, %d) = %d out of bounds", base, growth, n, got)
		}
	}
}

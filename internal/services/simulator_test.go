package services

import (
	"errors"
	"ev-route-dashboard/internal/domain"
	"math/rand"
	"testing"
	"time"
)

func linePath(s domain.Scenario, n int) domain.TripPath {
	p := domain.TripPath{Scenario: s}
	for i := range n {
		p.Points = append(p.Points, domain.GeoPoint{Lat: 42 + float64(i)*0.001, Lon: -83})
	}
	return p
}

func nineAM(t *testing.T) time.Time {
	t.Helper()
	start, err := time.Parse("15:04", "09:00")
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	return start
}

func TestSimulateInvariants(t *testing.T) {
	params := SimParams{
		Start:                    nineAM(t),
		Window:                   6 * time.Hour,
		ChargingStepsOptimized:   10,
		ChargingStepsUnoptimized: 20,
	}

	for seed := int64(1); seed <= 20; seed++ {
		opt := linePath(domain.Optimized, 30)
		unopt := linePath(domain.Unoptimized, 45)

		anim, err := Simulate(params, opt, unopt, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if anim.Len() != 45 {
			t.Fatalf("seed %d: frames = %d, want 45", seed, anim.Len())
		}

		for _, s := range domain.Scenarios {
			prev := domain.BatteryFull
			prevPrefix := 0
			for i := range anim.Len() {
				f := anim.Frame(i).For(s)

				if f.Battery < 0 || f.Battery > 100 {
					t.Fatalf("seed %d %s step %d: battery %d out of range", seed, s, i, f.Battery)
				}
				want := prev.Drain()
				if f.Charging {
					want = prev.Charge()
				}
				if f.Battery != want {
					t.Fatalf("seed %d %s step %d: battery %d, want %d", seed, s, i, f.Battery, want)
				}
				prev = f.Battery

				if f.PrefixLen < prevPrefix {
					t.Fatalf("seed %d %s step %d: prefix shrank %d -> %d", seed, s, i, prevPrefix, f.PrefixLen)
				}
				prevPrefix = f.PrefixLen
			}

			if prevPrefix != anim.Path(s).Len() {
				t.Fatalf("seed %d %s: final prefix %d, want %d", seed, s, prevPrefix, anim.Path(s).Len())
			}
		}
	}
}

func TestSimulateClock(t *testing.T) {
	params := SimParams{Start: nineAM(t), Window: 6 * time.Hour}

	anim, err := Simulate(params, linePath(domain.Optimized, 4), linePath(domain.Unoptimized, 2), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00 AM", "10:30 AM", "12:00 PM", "01:30 PM"}
	got := anim.TimeLabels()
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if anim.Frame(3).Unoptimized.PrefixLen != 2 {
		t.Fatalf("shorter path prefix should clamp at 2, got %d", anim.Frame(3).Unoptimized.PrefixLen)
	}
	if anim.Frame(3).Unoptimized.Battery != 96 {
		t.Fatalf("battery keeps draining after the path ends, got %d", anim.Frame(3).Unoptimized.Battery)
	}
}

func TestSimulateClockHoldsWhileCharging(t *testing.T) {
	// a one-point optimized path with one charging draw always charges at step 0
	params := SimParams{Start: nineAM(t), Window: 6 * time.Hour, ChargingStepsOptimized: 1}

	anim, err := Simulate(params, linePath(domain.Optimized, 1), linePath(domain.Unoptimized, 3), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00 AM", "09:00 AM", "11:00 AM"}
	for i, w := range want {
		if got := anim.Frame(i).TimeLabel; got != w {
			t.Fatalf("label[%d] = %q, want %q", i, got, w)
		}
	}

	opt := anim.BatteryLabels(domain.Optimized)
	if opt[0] != "100%" || opt[1] != "99%" || opt[2] != "98%" {
		t.Fatalf("optimized battery labels = %v", opt)
	}
}

func TestSimulateEmptyPath(t *testing.T) {
	params := SimParams{Start: nineAM(t), Window: 6 * time.Hour}
	rng := rand.New(rand.NewSource(1))

	_, err := Simulate(params, domain.TripPath{}, linePath(domain.Unoptimized, 3), rng)
	if !errors.Is(err, domain.ErrNoUsablePath) {
		t.Fatalf("expected ErrNoUsablePath, got %v", err)
	}

	_, err = Simulate(params, linePath(domain.Optimized, 3), domain.TripPath{}, rng)
	if !errors.Is(err, domain.ErrNoUsablePath) {
		t.Fatalf("expected ErrNoUsablePath, got %v", err)
	}
}

func TestAnimationFrameWraps(t *testing.T) {
	params := SimParams{Start: nineAM(t), Window: 6 * time.Hour, ChargingStepsOptimized: 3, ChargingStepsUnoptimized: 6}
	anim, err := Simulate(params, linePath(domain.Optimized, 7), linePath(domain.Unoptimized, 5), rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := anim.Len()
	for _, tick := range []int{-15, -1, 0, 6, 7, 100} {
		i := anim.Index(tick)
		if i < 0 || i >= n {
			t.Fatalf("index(%d) = %d out of [0,%d)", tick, i, n)
		}
		if i >= len(anim.TimeLabels()) || i >= len(anim.BatteryLabels(domain.Optimized)) || i >= len(anim.BatteryLabels(domain.Unoptimized)) {
			t.Fatalf("index(%d) = %d not valid for all label sequences", tick, i)
		}
	}

	if anim.Frame(-1).Index != n-1 {
		t.Fatalf("frame(-1) = %d, want %d", anim.Frame(-1).Index, n-1)
	}
	if anim.Frame(n).Index != 0 {
		t.Fatalf("frame(n) = %d, want 0", anim.Frame(n).Index)
	}
}

func TestPickChargingSteps(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	steps := PickChargingSteps(rng, 50, 20)
	if len(steps) == 0 || len(steps) > 20 {
		t.Fatalf("got %d steps, want 1..20", len(steps))
	}
	for s := range steps {
		if s < 0 || s >= 50 {
			t.Fatalf("step %d outside [0,50)", s)
		}
	}

	if got := PickChargingSteps(rng, 0, 10); len(got) != 0 {
		t.Fatalf("empty path should yield no steps, got %d", len(got))
	}
}

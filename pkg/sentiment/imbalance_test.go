package sentiment

import (
	"math"
	"testing"
)

const eps = 1e-12

func TestImbalanceKnownValues(t *testing.T) {
	cases := []struct {
		p, n int
		want float64
	}{
		{0, 0, 0},
		{1, 1, 0},
		{7, 7, 0},
		{1, 0, 1},
		{5, 0, 1},
		{0, 1, -1},
		{0, 2, -1},
		{2, 1, 2.0 / 9.0},
		{1, 2, -2.0 / 9.0},
		{3, 1, 6.0 / 16.0},
		{1, 3, -6.0 / 16.0},
	}
	for _, tc := range cases {
		if got := Imbalance(tc.p, tc.n); math.Abs(got-tc.want) > eps {
			t.Errorf("Imbalance(%d, %d) = %v, want %v", tc.p, tc.n, got, tc.want)
		}
	}
}

// For p > n the score is p(p-n)/(p+n)^2, which lies in (0, 1] because
// 0 < p-n <= p+n and p <= p+n. The other branch is the mirror image, so the
// coefficient is bounded by [-1, 1] and carries the sign of p-n.
func TestImbalanceBoundsAndSign(t *testing.T) {
	for p := 0; p <= 200; p++ {
		for n := 0; n <= 200; n++ {
			s := Imbalance(p, n)
			if math.IsNaN(s) || s < -1 || s > 1 {
				t.Fatalf("Imbalance(%d, %d) = %v out of [-1, 1]", p, n, s)
			}
			switch {
			case p > n && s <= 0:
				t.Fatalf("Imbalance(%d, %d) = %v, want > 0", p, n, s)
			case p < n && s >= 0:
				t.Fatalf("Imbalance(%d, %d) = %v, want < 0", p, n, s)
			case p == n && s != 0:
				t.Fatalf("Imbalance(%d, %d) = %v, want 0", p, n, s)
			}
		}
	}
}

func TestImbalanceMirrorsArguments(t *testing.T) {
	for p := 0; p <= 50; p++ {
		for n := 0; n <= 50; n++ {
			if a, b := Imbalance(p, n), Imbalance(n, p); math.Abs(a+b) > eps {
				t.Fatalf("Imbalance(%d, %d) = %v but Imbalance(%d, %d) = %v", p, n, a, n, p, b)
			}
		}
	}
}

func TestImbalanceOneSidedCountsSaturate(t *testing.T) {
	for _, k := range []int{1, 2, 10, 1000, 1 << 20} {
		if got := Imbalance(k, 0); got != 1 {
			t.Errorf("Imbalance(%d, 0) = %v, want 1", k, got)
		}
		if got := Imbalance(0, k); got != -1 {
			t.Errorf("Imbalance(0, %d) = %v, want -1", k, got)
		}
	}
}

func TestImbalanceGrowsWithDominantCount(t *testing.T) {
	prev := Imbalance(1, 1)
	for p := 2; p <= 500; p++ {
		s := Imbalance(p, 1)
		if s <= prev || s >= 1 {
			t.Fatalf("Imbalance(%d, 1) = %v after %v", p, s, prev)
		}
		prev = s
	}
}

func TestImbalanceAll(t *testing.T) {
	got := ImbalanceAll([]int{1, 0, 2}, []int{1, 1, 1})
	want := []float64{0, -1, 2.0 / 9.0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Errorf("score[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on length mismatch")
		}
	}()
	ImbalanceAll([]int{1}, nil)
}

package sentiment

import "fmt"

// Imbalance returns the Janis-Fadner coefficient of imbalance for p positive and
// n negative matches. The result has the sign of p-n and lies in [-1, 1]:
// 1 when only positive tokens matched, -1 when only negative ones did, and 0
// when the counts are equal (including when both are zero).
func Imbalance(p, n int) float64 {
	fp, fn := float64(p), float64(n)
	switch {
	case p > n:
		return (fp*fp - fp*fn) / ((fp + fn) * (fp + fn))
	case p == 0 && n == 0:
		return 0
	default:
		return (fp*fn - fn*fn) / ((fp + fn) * (fp + fn))
	}
}

// ImbalanceAll scores pairs of counts. pos and neg must have the same length.
func ImbalanceAll(pos, neg []int) []float64 {
	if len(pos) != len(neg) {
		panic(fmt.Sprintf("sentiment: %d positive counts but %d negative counts", len(pos), len(neg)))
	}
	out := make([]float64, len(pos))
	for i := range pos {
		out[i] = Imbalance(pos[i], neg[i])
	}
	return out
}

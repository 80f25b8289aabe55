package sentiment

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the score distribution of one run.
type Summary struct {
	Documents int
	Positive  int // score > 0
	Negative  int // score < 0
	Neutral   int // score == 0
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
}

// Summarize computes the run summary. The standard deviation is the sample
// standard deviation and is 0 for fewer than two documents.
func Summarize(results []Result) Summary {
	s := Summary{Documents: len(results)}
	if len(results) == 0 {
		return s
	}
	scores := Scores(results)
	for _, v := range scores {
		switch {
		case v > 0:
			s.Positive++
		case v < 0:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	if len(scores) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	} else {
		s.Mean = scores[0]
	}
	s.Min = floats.Min(scores)
	s.Max = floats.Max(scores)
	return s
}

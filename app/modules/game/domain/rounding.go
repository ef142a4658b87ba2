package gamedomain

import "math"

// RoundTo rounds v to the given number of decimal places, halves away from zero.
func RoundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// PerThreeDarts normalizes points to a three-dart average. Zero darts yields 0.
func PerThreeDarts(points float64, darts int, places int) float64 {
	if darts <= 0 {
		return 0
	}
	return RoundTo(points/float64(darts)*3, places)
}

// PointsFromAverage inverts PerThreeDarts. It is only as precise as the
// rounding that produced average.
func PointsFromAverage(average float64, darts int) float64 {
	return average * float64(darts) / 3
}

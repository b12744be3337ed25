package chrome

import "math"

const (
	// ScrollThreshold is the vertical offset in px past which the scroll-to-top button shows.
	ScrollThreshold = 300
	ProgressRadius  = 20
)

func ShowScrollToTop(scrollY float64) bool {
	return scrollY > ScrollThreshold
}

func ProgressCircumference() float64 {
	return 2 * math.Pi * ProgressRadius
}

// ProgressDashOffset is the stroke-dashoffset drawing progress of the ring.
func ProgressDashOffset(progress float64) float64 {
	return ProgressCircumference() * (1 - progress)
}

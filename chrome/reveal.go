package chrome

import (
	"fmt"
	"html/template"
	"strconv"
)

// Easing is the cubic-bezier shared by every reveal transition.
const Easing = "cubic-bezier(0.25, 0.46, 0.45, 0.94)"

// Reveal configures a reveal-on-scroll wrapper. Delay and Duration are in seconds.
type Reveal struct {
	Delay      float64
	Duration   float64
	YOffset    int
	Threshold  float64
	RootMargin string
	Once       bool
}

func DefaultReveal() Reveal {
	return Reveal{
		Duration:   0.6,
		YOffset:    30,
		Threshold:  0.1,
		RootMargin: "-50px 0px",
		Once:       true,
	}
}

// SectionReveal is used for whole page sections.
func SectionReveal() Reveal {
	r := DefaultReveal()
	r.Duration = 0.8
	r.YOffset = 40
	r.Threshold = 0.05
	return r
}

func (r Reveal) WithDelay(seconds float64) Reveal {
	r.Delay = seconds
	return r
}

// Attrs renders the data attributes read by reveal.js.
func (r Reveal) Attrs() template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal data-reveal-delay="%s" data-reveal-duration="%s" data-reveal-y="%d" data-reveal-threshold="%s" data-reveal-margin="%s" data-reveal-once="%t"`,
		formatSeconds(r.Delay),
		formatSeconds(r.Duration),
		r.YOffset,
		formatSeconds(r.Threshold),
		template.HTMLEscapeString(r.RootMargin),
		r.Once,
	))
}

func formatSeconds(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package views

import (
	"time"

	"greenbloom/models"
)

// SlideInterval is how long each hero slide stays up.
const SlideInterval = 5 * time.Second

// SlideView is a hero slide with its place in the CSS rotation.
type SlideView struct {
	models.Slide
	Delay  time.Duration
	Cycle  time.Duration
	Active bool
}

// SlideDelays staggers the slides so that a single CSS animation of one
// cycle shows each for SlideInterval in turn, the first one immediately.
func SlideDelays(slides []models.Slide) []SlideView {
	cycle := time.Duration(len(slides)) * SlideInterval
	out := make([]SlideView, 0, len(slides))
	for i, s := range slides {
		out = append(out, SlideView{
			Slide:  s,
			Delay:  time.Duration(i) * SlideInterval,
			Cycle:  cycle,
			Active: i == 0,
		})
	}
	return out
}

// Season names the body class for the month of now.
func Season(now time.Time) string {
	switch now.Month() {
	case time.March, time.April, time.May:
		return "season-spring"
	case time.June, time.July, time.August:
		return "season-summer"
	case time.September, time.October, time.November:
		return "season-autumn"
	default:
		return "season-winter"
	}
}

// Badges lists the labels shown on a featured plant card. A plant can be
// both new and popular.
func Badges(p models.Plant) []string {
	var out []string
	if p.IsNew {
		out = append(out, "New")
	}
	if p.IsPopular {
		out = append(out, "Popular")
	}
	return out
}

package marquee

import (
	"math"
	"time"

	"github.com/jask/marquee/internal/resize"
)

// Duration derives the loop duration in whole seconds from the measured strip
// width (in pixel equivalents) and the base rate. Wider strips take longer so
// the apparent speed stays constant.
func Duration(itemsWidth, animationDuration float64) int {
	if itemsWidth <= 0 || animationDuration <= 0 {
		return 0
	}
	d := itemsWidth / (100 / animationDuration) / 100
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return 0
	}
	return int(math.Floor(d))
}

// Play directions.
const (
	PlayNormal  = "normal"
	PlayReverse = "reverse"
)

// Projection is the layout every direction is reduced to. Vertical
// directions rotate the container by 90 degrees and the items back by -90,
// so Width is always the length of the scroll axis and Height the cross
// axis.
type Projection struct {
	Vertical       bool
	PlayDirection  string
	Width          int
	Height         int
	Rotate         int
	ItemRotate     int
	Origin         string
	IterationCount string
	Delay          time.Duration
}

// Project computes the projection for direction inside parent.
func Project(direction Direction, parent resize.Dimensions) Projection {
	p := Projection{
		Vertical:       direction.Vertical(),
		PlayDirection:  PlayNormal,
		Width:          parent.Width,
		Height:         parent.Height,
		Origin:         "none",
		IterationCount: "infinite",
	}
	if direction == Right || direction == Down {
		p.PlayDirection = PlayReverse
	}
	if p.Vertical {
		p.Width, p.Height = parent.Height, parent.Width
		p.Rotate = 90
		p.ItemRotate = -90
		p.Origin = "left bottom"
	}
	return p
}

// Offset returns how far into the doubled track the viewport starts, given
// the fraction of the current loop that has elapsed.
func Offset(fraction float64, length int, reverse bool) int {
	if length <= 0 {
		return 0
	}
	fraction = fraction - math.Floor(fraction)
	off := int(fraction * float64(length))
	if off >= length {
		off = length - 1
	}
	if reverse {
		off = (length - off) % length
	}
	return off
}

package marquee

import (
	"strings"
	"time"

	"github.com/jask/marquee/internal/content"
)

// Direction is the way items travel across the viewport.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Directions lists every direction in cycling order.
var Directions = []Direction{Left, Up, Right, Down}

// ParseDirection normalises s. Unknown values report false.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Left, Right, Up, Down:
		return d, true
	default:
		return Left, false
	}
}

// Vertical reports whether the direction scrolls along rows.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Next returns the direction after d in Directions.
func (d Direction) Next() Direction {
	for i, cand := range Directions {
		if cand == d {
			return Directions[(i+1)%len(Directions)]
		}
	}
	return Left
}

// Text element types accepted by TextElementType.
var TextElements = []string{"p", "h1", "h2", "h3", "h4", "h5", "h6"}

// ItemView is what a custom renderer receives for each live item.
type ItemView struct {
	content.Record

	IsTransitioning bool
	DeleteItem      func()
	SetProperty     func(key string, value any)
	RemoveProperty  func(key string)
}

// Options configures a marquee. Content is required; everything else has a
// usable zero value.
type Options struct {
	Content []content.Item

	Direction Direction
	// AnimationDuration is the base rate; larger values scroll slower.
	// Zero or negative falls back to 10.
	AnimationDuration float64
	AnimationDelay    time.Duration
	// AnimationIterationCount of zero loops forever.
	AnimationIterationCount int

	PauseOnHover bool
	PauseOnClick bool

	// TransitionDuration is how long a deleted item lingers before removal.
	TransitionDuration time.Duration

	TextElementType string
	ImageContent    []string
	TextContent     []string
	RenderItem      func(ItemView) string

	OnAnimationStart     func()
	OnAnimationEnd       func()
	OnAnimationIteration func()
	OnMount              func()

	// FPS is the frame rate of the scroll. Defaults to 30.
	FPS int
	// CellPixels converts measured columns to pixel equivalents for the
	// duration formula; rows count double. Defaults to 8.
	CellPixels int
	// Gap is the number of blank cells after every item in a strip.
	Gap int

	// Scheduler overrides the timer used for deferred removal.
	Scheduler content.Scheduler
}

const (
	defaultAnimationDuration = 10
	defaultFPS               = 30
	defaultCellPixels        = 8
)

func (o Options) normalized() Options {
	if d, ok := ParseDirection(string(o.Direction)); ok {
		o.Direction = d
	} else {
		o.Direction = Left
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = defaultAnimationDuration
	}
	if o.AnimationIterationCount < 0 {
		o.AnimationIterationCount = 0
	}
	if o.AnimationDelay < 0 {
		o.AnimationDelay = 0
	}
	if !validTextElement(o.TextElementType) {
		o.TextElementType = "p"
	}
	if o.FPS <= 0 {
		o.FPS = defaultFPS
	}
	if o.CellPixels <= 0 {
		o.CellPixels = defaultCellPixels
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	return o
}

func validTextElement(s string) bool {
	for _, e := range TextElements {
		if e == s {
			return true
		}
	}
	return false
}

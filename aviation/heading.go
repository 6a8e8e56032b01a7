// aviation/heading.go
// Copyright(c) 2026 atcspeech contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"math"
)

// Heading is a magnetic heading in degrees, normalized to [0, 360).
type Heading float64

// NewHeading normalizes h into [0, 360) using the Euclidean remainder, so
// negative inputs wrap the right way: NewHeading(-90) == 270.
func NewHeading(h float64) Heading {
	m := math.Mod(h, 360)
	if m < 0 {
		m += 360
	}
	return Heading(m)
}

func (h Heading) Degrees() float64 { return float64(h) }

// String renders the heading the way it is read back on frequency: three
// digits, with zero spoken as 360.
func (h Heading) String() string {
	d := math.Round(float64(h))
	if d == 0 {
		d = 360
	}
	return fmt.Sprintf("%03.0f", d)
}

// RequiredChange returns the signed shortest turn from h to to, in
// (-180, 180]; positive is a right turn.
func (h Heading) RequiredChange(to Heading) float64 {
	d := float64(to) - float64(h)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

type TurnDirection string

const (
	TurnLeft  TurnDirection = "left"
	TurnRight TurnDirection = "right"
)

type VerticalDirection string

const (
	Climb   VerticalDirection = "climb"
	Descend VerticalDirection = "descend"
)

type CardinalDirection string

const (
	North     CardinalDirection = "north"
	NorthEast CardinalDirection = "northeast"
	East      CardinalDirection = "east"
	SouthEast CardinalDirection = "southeast"
	South     CardinalDirection = "south"
	SouthWest CardinalDirection = "southwest"
	West      CardinalDirection = "west"
	NorthWest CardinalDirection = "northwest"
)

// Heading returns the heading at the center of the cardinal's 45 degree arc.
func (c CardinalDirection) Heading() Heading {
	switch c {
	case North:
		return NewHeading(360)
	case NorthEast:
		return 45
	case East:
		return 90
	case SouthEast:
		return 135
	case South:
		return 180
	case SouthWest:
		return 225
	case West:
		return 270
	case NorthWest:
		return 315
	}
	return 0
}

// HeadingTarget is what a heading instruction points at: a numeric heading,
// a cardinal direction, or the runway heading.
type HeadingTarget interface {
	isHeadingTarget()
	String() string
}

func (Heading) isHeadingTarget()           {}
func (CardinalDirection) isHeadingTarget() {}

func (c CardinalDirection) String() string { return string(c) }

// RunwayHeading instructs the aircraft to maintain the heading of its
// departure runway.
type RunwayHeading struct{}

func (RunwayHeading) isHeadingTarget() {}
func (RunwayHeading) String() string   { return "runway heading" }

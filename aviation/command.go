// aviation/command.go
// Copyright(c) 2026 atcspeech contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "fmt"

// CommandPart is a single instruction within a clearance. The concrete
// types below are the only implementations.
type CommandPart interface {
	isCommandPart()
	String() string
}

// RadarContact acknowledges the aircraft on radar.
type RadarContact struct{}

func (RadarContact) isCommandPart() {}
func (RadarContact) String() string { return "radar contact" }

// TurnBy is a relative turn by a number of degrees.
type TurnBy struct {
	Degrees   float64
	Direction *TurnDirection
}

func (TurnBy) isCommandPart() {}
func (t TurnBy) String() string {
	if t.Direction != nil {
		return fmt.Sprintf("turn %s %.0f degrees", *t.Direction, t.Degrees)
	}
	return fmt.Sprintf("turn %.0f degrees", t.Degrees)
}

// FlyHeading is an absolute heading instruction.
type FlyHeading struct {
	Heading   HeadingTarget
	Direction *TurnDirection
}

func (FlyHeading) isCommandPart() {}
func (f FlyHeading) String() string {
	if f.Direction != nil {
		return fmt.Sprintf("turn %s heading %s", *f.Direction, f.Heading)
	}
	return "fly heading " + f.Heading.String()
}

// ProceedDirect clears the aircraft direct to a waypoint.
type ProceedDirect struct {
	Waypoint string
}

func (ProceedDirect) isCommandPart()   {}
func (p ProceedDirect) String() string { return "proceed direct " + p.Waypoint }

// ChangeAltitude is a climb, descent, or altitude to maintain.
type ChangeAltitude struct {
	Altitude Altitude
	Maintain bool
	Vertical *VerticalDirection
}

func (ChangeAltitude) isCommandPart() {}
func (c ChangeAltitude) String() string {
	switch {
	case c.Vertical != nil && c.Maintain:
		return fmt.Sprintf("%s and maintain %s", *c.Vertical, c.Altitude)
	case c.Vertical != nil:
		return fmt.Sprintf("%s %s", *c.Vertical, c.Altitude)
	default:
		return "maintain " + c.Altitude.String()
	}
}

// ContactFrequency hands the aircraft off to another station.
type ContactFrequency struct {
	Frequency Frequency
	Station   string // empty when no station was named
}

func (ContactFrequency) isCommandPart() {}
func (c ContactFrequency) String() string {
	if c.Station != "" {
		return fmt.Sprintf("contact %s %s", c.Station, c.Frequency)
	}
	return "contact " + c.Frequency.String()
}

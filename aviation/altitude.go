// aviation/altitude.go
// Copyright(c) 2026 atcspeech contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "fmt"

// FlightLevelFloor is the altitude in feet at or above which clearances are
// phrased as flight levels.
const FlightLevelFloor = 18000

// Altitude is either a plain altitude in feet or a flight level (hundreds
// of feet). The zero value is 0 feet.
type Altitude struct {
	feet float64
	fl   uint
	isFL bool
}

func AltitudeFeet(ft float64) Altitude { return Altitude{feet: ft} }

func FlightLevel(fl uint) Altitude { return Altitude{fl: fl, isFL: true} }

// AltitudeFromFeet converts ft into the conventional phraseology: flight
// level at or above FlightLevelFloor, feet below it.
func AltitudeFromFeet(ft float64) Altitude {
	if ft >= FlightLevelFloor {
		return FlightLevel(uint(ft) / 100)
	}
	return AltitudeFeet(ft)
}

func (a Altitude) IsFlightLevel() bool { return a.isFL }

// Level returns the flight level; zero if this is a feet altitude.
func (a Altitude) Level() uint { return a.fl }

func (a Altitude) AsFeet() float64 {
	if a.isFL {
		return float64(a.fl) * 100
	}
	return a.feet
}

func (a Altitude) String() string {
	if a.isFL {
		return fmt.Sprintf("FL%03d", a.fl)
	}
	return fmt.Sprintf("%.0f ft", a.feet)
}

// aviation/frequency.go
// Copyright(c) 2026 atcspeech contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strconv"
	"strings"
)

// Frequency is a VHF airband frequency split at the decimal point:
// 121.5 MHz is {Num: 121, Dec: 5}.
type Frequency struct {
	Num uint
	Dec uint
}

// ParseFrequency accepts "121.5" or a bare "121"; it does not validate the
// band, so callers that need an airband frequency check Valid afterwards.
func ParseFrequency(s string) (Frequency, error) {
	num, dec, ok := strings.Cut(strings.TrimSpace(s), ".")
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Frequency{}, fmt.Errorf("invalid frequency %q: %w", s, err)
	}
	f := Frequency{Num: uint(n)}
	if ok {
		d, err := strconv.ParseUint(dec, 10, 32)
		if err != nil {
			return Frequency{}, fmt.Errorf("invalid frequency %q: %w", s, err)
		}
		f.Dec = uint(d)
	}
	return f, nil
}

// Valid reports whether f lies in the VHF airband: whole part 118-137 MHz,
// at most three decimal digits.
func (f Frequency) Valid() bool {
	return f.Num >= 118 && f.Num <= 137 && f.Dec <= 999
}

func (f Frequency) String() string {
	return fmt.Sprintf("%d.%d", f.Num, f.Dec)
}

package stt

import (
	"regexp"
	"strconv"
	"strings"

	av "github.com/mkoch/atcspeech/aviation"
)

// tokenMatcher tests a single token during graph traversal. score is the
// matcher's confidence in [0, 1]; value carries extracted data (a
// direction, a heading, a frequency...) when the matcher produces any.
// index and tokens give matchers context, though most only look at the
// token itself.
type tokenMatcher interface {
	match(token string, index int, tokens []string) (score float64, value any, ok bool)
}

// exactMatcher requires a literal token.
type exactMatcher struct {
	want string
}

func (m exactMatcher) match(token string, _ int, _ []string) (float64, any, bool) {
	if token == m.want {
		return 1, nil, true
	}
	return 0, nil, false
}

// oneOfMatcher matches any of a set of literals; values maps options that
// carry meaning (directions, station names) to what they extract.
type oneOfMatcher struct {
	options []string
	values  map[string]any
}

func (m oneOfMatcher) match(token string, _ int, _ []string) (float64, any, bool) {
	for _, opt := range m.options {
		if token == opt {
			return 0.95, m.values[opt], true
		}
	}
	return 0, nil, false
}

// fuzzyMatcher accepts tokens similar enough to the target; the similarity
// itself becomes the score, so a sloppier transcription costs confidence.
type fuzzyMatcher struct {
	want      string
	threshold float64
}

func (m fuzzyMatcher) match(token string, _ int, _ []string) (float64, any, bool) {
	if s := Similarity(token, m.want); s >= m.threshold {
		return s, nil, true
	}
	return 0, nil, false
}

type numberKind int

const (
	numberHeading numberKind = iota
	numberAltitude
	numberFrequency
	numberFlight
)

// numberMatcher validates numeric tokens against a domain range.
type numberMatcher struct {
	kind numberKind
}

func (m numberMatcher) match(token string, _ int, _ []string) (float64, any, bool) {
	switch m.kind {
	case numberHeading:
		if v, err := strconv.ParseFloat(token, 64); err == nil && v >= 0 && v <= 360 {
			return 0.9, v, true
		}

	case numberAltitude:
		if isDigits(token) {
			if v, err := strconv.ParseUint(token, 10, 32); err == nil && v <= 60000 {
				return 0.9, uint(v), true
			}
		}

	case numberFrequency:
		if strings.Contains(token, ".") {
			if f, err := av.ParseFrequency(token); err == nil && f.Valid() {
				return 0.9, f, true
			}
		} else if isDigits(token) {
			if v, err := strconv.ParseUint(token, 10, 32); err == nil && v >= 118 && v <= 137 {
				return 0.8, av.Frequency{Num: uint(v)}, true
			}
		}

	case numberFlight:
		if isAlphanumeric(token) {
			return 0.8, nil, true
		}
	}
	return 0, nil, false
}

// airlineMatcher matches a token naming an airline, or a lone NATO word
// standing in for a letter of a registration.
type airlineMatcher struct {
	resolver *AirlineResolver
}

func (m airlineMatcher) match(token string, _ int, _ []string) (float64, any, bool) {
	if icao, ok := m.resolver.lookup(token); ok {
		return 0.9, strings.ToUpper(icao), true
	}
	if letter, ok := m.resolver.phonetic[token]; ok {
		return 0.9, strings.ToUpper(letter), true
	}
	return 0, nil, false
}

// patternMatcher matches a precompiled regexp against the whole token.
type patternMatcher struct {
	re *regexp.Regexp
}

func (m patternMatcher) match(token string, _ int, _ []string) (float64, any, bool) {
	if m.re.MatchString(token) {
		return 0.8, token, true
	}
	return 0, nil, false
}

// optionalMatcher always matches, at reduced confidence, letting an edge
// pass over fluff tokens. Whether the token is consumed is the edge's
// decision, not the matcher's.
type optionalMatcher struct {
	inner tokenMatcher
}

func (m optionalMatcher) match(_ string, _ int, _ []string) (float64, any, bool) {
	return 0.9, nil, true
}

package stt

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	av "github.com/mkoch/atcspeech/aviation"
)

// Callsign extraction patterns, tried in order against the
// digit-normalized and then the raw transmission. The first group is
// the callsign phrase, the second the command tail. The spoken-digit
// variant of the first pattern is built per-config in NewPatternParser.
var (
	csDigits = regexp.MustCompile(`^([a-z]+(?:\s+[a-z]+)*\s+\d+),?\s+(.+)$`)
	csICAO   = regexp.MustCompile(`^([A-Z]{2,3}\s*\d{1,4}[A-Z]?),?\s+(.+)$`)
	csLoose  = regexp.MustCompile(`^([a-z][a-z\s]*\d+[a-z]?),?\s+(.+)$`)
)

// Sub-parser patterns. All are anchored: a span is claimed only when the
// whole span is the command, which is what keeps the longest-first span
// scan from swallowing trailing junk.
var (
	headingTurnRe = regexp.MustCompile(`^turn\s+(left|right)\s+heading\s+(\d{1,3})$`)
	headingFlyRe  = regexp.MustCompile(`^fly\s+heading\s+(\d{1,3})$`)
	headingBareRe = regexp.MustCompile(`^heading\s+(\d{1,3})$`)

	altChangeFLRe   = regexp.MustCompile(`^(climb|descend)(?:\s+and\s+(maintain))?(?:\s+to)?\s+flight\s+level\s+(\d{2,3})$`)
	altChangeFeetRe = regexp.MustCompile(`^(climb|descend)(?:\s+and\s+(maintain))?(?:\s+to)?\s+(\d{1,2})[\s,]?(\d{3})\s+feet$`)
	altMaintFLRe    = regexp.MustCompile(`^maintain\s+flight\s+level\s+(\d{2,3})$`)
	altMaintSplitRe = regexp.MustCompile(`^maintain\s+(\d{1,2})[\s,]?(\d{3})\s+feet$`)
	altMaintFeetRe  = regexp.MustCompile(`^maintain\s+(\d{3,5})\s+feet$`)

	freqContactRe     = regexp.MustCompile(`^contact\s+(\w+)(?:\s+on)?\s+(\d{3})\.(\d{1,3})$`)
	freqSpokenRe      = regexp.MustCompile(`^contact\s+(\w+)(?:\s+on)?\s+(\d)\s+(\d)\s+(\d)\.(\d+)$`)
	freqSpokenPointRe = regexp.MustCompile(`^contact\s+(\w+)(?:\s+on)?\s+(\d)\s+(\d)\s+(\d)\s+point\s+(\d+)$`)
	freqBareRe        = regexp.MustCompile(`^(?:contact\s+)?frequency\s+(\d{3})\.(\d{1,3})$`)

	numericHeadingRe = regexp.MustCompile(`heading\s+\d`)
	turnRe           = regexp.MustCompile(`^turn\s+(left|right)(?:\s+(?:by\s+)?(\d{1,3})\s+degrees?)?$`)

	directRe = regexp.MustCompile(`^(proceed\s+)?direct(?:\s+to)?\s+([a-z]{2,6}\d*)$`)
)

var commandKeywords = map[string]bool{
	"turn": true, "fly": true, "climb": true, "descend": true,
	"maintain": true, "contact": true, "cleared": true, "proceed": true,
	"direct": true, "radar": true, "heading": true, "vector": true,
	"squawk": true,
}

var fillerWords = map[string]bool{
	"and": true, "then": true, "also": true, "now": true, "please": true,
}

// multiWordCommands are the keyword runs a span may legitimately open
// with; keywords inside the run do not disqualify the span.
var multiWordCommands = [][]string{
	{"turn", "left", "heading"},
	{"turn", "right", "heading"},
	{"fly", "heading"},
	{"radar", "contact"},
	{"proceed", "direct"},
	{"climb", "and", "maintain"},
	{"descend", "and", "maintain"},
}

var knownStations = map[string]bool{
	"tower": true, "ground": true, "approach": true,
	"departure": true, "center": true,
}

// PatternParser extracts a callsign with ordered regexes and then walks
// the command tail greedily, matching the longest claimable span at each
// command keyword. Immutable once built; safe for concurrent use.
type PatternParser struct {
	norm        *Normalizer
	resolver    *AirlineResolver
	numberWords map[string]uint
	phonetic    map[string]string
	csSpoken    *regexp.Regexp
}

func NewPatternParser(cfg *Config, resolver *AirlineResolver) (*PatternParser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	norm, err := NewNormalizer(cfg)
	if err != nil {
		return nil, err
	}

	// "lufthansa one two tree, ...": an airline phrase followed by
	// spoken digits. Longer words first so "niner" isn't eaten by "nine".
	words := make([]string, 0, len(cfg.NumberWords))
	for w := range cfg.NumberWords {
		words = append(words, regexp.QuoteMeta(w))
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	alt := `(?:` + strings.Join(words, "|") + `|\d)`
	csSpoken, err := regexp.Compile(`^([a-z]+(?:\s+[a-z]+)*\s+` + alt + `+(?:\s+` + alt + `)*),?\s+(.+)$`)
	if err != nil {
		return nil, &NormalizationError{Pattern: alt, Err: err}
	}

	return &PatternParser{
		norm:        norm,
		resolver:    resolver,
		numberWords: cfg.NumberWords,
		phonetic:    cfg.PhoneticAlphabet,
		csSpoken:    csSpoken,
	}, nil
}

// Parse runs callsign extraction and greedy command extraction over one
// transmission.
func (p *PatternParser) Parse(text string) ParseResult {
	raw := strings.TrimSpace(text)
	digitNorm := p.norm.DigitString(strings.ToLower(raw))

	phrase, tail, ok := p.extractCallsign(digitNorm, raw)
	if !ok {
		// No callsign; salvage any commands under an UNKNOWN callsign.
		commands, unparsed := p.parseCommands(digitNorm)
		if len(commands) == 0 {
			return ParseResult{
				Kind:    ResultFailed,
				Reason:  "No valid callsign or commands found",
				RawText: raw,
			}
		}
		logParse("pattern: no callsign, %d commands", len(commands))
		return classify(&ParsedCommand{Callsign: "UNKNOWN", Commands: commands}, unparsed)
	}

	callsign, csConf := p.normalizeCallsign(phrase)
	logParse("pattern: callsign %q -> %q (%.2f)", phrase, callsign, csConf)

	commands, unparsed := p.parseCommands(tail)
	if len(commands) == 0 {
		return ParseResult{Kind: ResultCallsignOnly, Callsign: callsign}
	}
	return classify(&ParsedCommand{
		Callsign:           callsign,
		CallsignConfidence: csConf,
		Commands:           commands,
	}, unparsed)
}

func classify(parsed *ParsedCommand, unparsed []string) ParseResult {
	if len(unparsed) == 0 {
		return ParseResult{Kind: ResultSuccess, Parsed: parsed}
	}
	return ParseResult{Kind: ResultPartialSuccess, Parsed: parsed, UnparsedParts: unparsed}
}

func (p *PatternParser) extractCallsign(digitNorm, raw string) (phrase, tail string, ok bool) {
	for _, s := range []string{digitNorm, raw} {
		for _, re := range []*regexp.Regexp{p.csSpoken, csDigits, csICAO, csLoose} {
			if m := re.FindStringSubmatch(s); m != nil {
				return m[1], m[2], true
			}
		}
	}
	return "", "", false
}

// normalizeCallsign converts a spoken callsign phrase into ICAO form
// ("lufthansa one two three" -> "DLH123") together with a confidence for
// how the airline part was recognized.
func (p *PatternParser) normalizeCallsign(phrase string) (string, float64) {
	words := strings.Fields(p.norm.DigitString(strings.ToLower(phrase)))

	// Find where the airline name ends and the flight number begins.
	end := -1
	for i, w := range words {
		if isDigits(w) {
			end = i
			break
		}
	}
	if end > 0 {
		airline := strings.Join(words[:end], " ")
		var flight strings.Builder
		for _, w := range words[end:] {
			switch {
			case isDigits(w):
				flight.WriteString(w)
			case p.phonetic[w] != "":
				// Trailing registration letter ("four five six alpha").
				flight.WriteString(p.phonetic[w])
			}
		}
		if icao, conf, ok := p.resolver.Resolve(airline); ok {
			return icao + strings.ToUpper(flight.String()), conf
		}
	}

	return p.fallbackCallsign(words)
}

// fallbackCallsign builds a callsign without airline knowledge: phonetic
// words become letters, everything alphabetic keeps its letters, digits
// trail.
func (p *PatternParser) fallbackCallsign(words []string) (string, float64) {
	var letters, digits strings.Builder
	phoneticUsed := false
	for _, w := range words {
		d, isNum := p.numberWords[w]
		switch {
		case p.phonetic[w] != "":
			letters.WriteString(p.phonetic[w])
			phoneticUsed = true
		case isDigits(w):
			digits.WriteString(w)
		case isNum:
			digits.WriteString(strconv.Itoa(int(d)))
		default:
			letters.WriteString(w)
		}
	}
	cs := strings.ToUpper(letters.String() + digits.String())

	hasL, hasD := false, false
	for _, r := range cs {
		if r >= '0' && r <= '9' {
			hasD = true
		} else {
			hasL = true
		}
	}
	var conf float64
	switch {
	case len(cs) < 3:
		conf = 0.3
	case phoneticUsed && hasL && hasD:
		conf = confAirlinePhonetic
	case hasL && hasD:
		conf = 0.8
	case hasL || hasD:
		conf = 0.6
	default:
		conf = 0.2
	}
	return cs, conf
}

// parseCommands scans the command tail left to right. At each command
// keyword it claims the longest span some sub-parser accepts in full;
// everything unclaimed lands in unparsed.
func (p *PatternParser) parseCommands(tail string) ([]CommandWithConfidence, []string) {
	words := p.norm.Normalize(tail)

	var commands []CommandWithConfidence
	var unparsed []string

	for i := 0; i < len(words); {
		w := words[i]
		if fillerWords[w] {
			i++
			continue
		}
		if !commandKeywords[w] {
			unparsed = append(unparsed, w)
			i++
			continue
		}
		cmd, conf, n := p.parseAt(words, i)
		if n == 0 {
			unparsed = append(unparsed, w)
			i++
			continue
		}
		src := strings.Join(words[i:i+n], " ")
		logParse("pattern: %q -> %s (%.2f)", src, cmd, conf)
		commands = append(commands, CommandWithConfidence{Command: cmd, Confidence: conf, SourceText: src})
		i += n
	}
	return commands, unparsed
}

// parseAt tries spans starting at start, longest first, and returns the
// first command a sub-parser accepts along with the span length.
func (p *PatternParser) parseAt(words []string, start int) (av.CommandPart, float64, int) {
	for end := len(words); end > start; end-- {
		span := words[start:end]
		if !spanAllowed(span) {
			continue
		}
		text := strings.Join(span, " ")
		for _, sub := range []func(string, []string) (av.CommandPart, float64, bool){
			p.parseHeading, p.parseAltitude, p.parseFrequency,
			p.parseRadarContact, p.parseTurn, p.parseDirect,
		} {
			if cmd, conf, ok := sub(text, span); ok {
				return cmd, min(conf, 1), end - start
			}
		}
	}
	return nil, 0, 0
}

// spanAllowed rejects spans that straddle another command keyword, unless
// that keyword belongs to the multi-word command the span opens with.
func spanAllowed(span []string) bool {
	prefix := 0
	for _, mw := range multiWordCommands {
		if len(span) >= len(mw) {
			match := true
			for i, w := range mw {
				if span[i] != w {
					match = false
					break
				}
			}
			if match && len(mw) > prefix {
				prefix = len(mw)
			}
		}
	}
	for j := 1; j < len(span); j++ {
		if j >= prefix && commandKeywords[span[j]] {
			return false
		}
	}
	return true
}

func (p *PatternParser) parseHeading(text string, _ []string) (av.CommandPart, float64, bool) {
	for _, c := range []struct {
		re          *regexp.Regexp
		conf, bonus float64
	}{
		{headingTurnRe, 0.9, 0},
		{headingFlyRe, 0.95, 0.05},
		{headingBareRe, 0.7, 0.05},
	} {
		m := c.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[len(m)-1])
		// The direction is implicit in the absolute heading.
		return av.FlyHeading{Heading: av.NewHeading(float64(n))}, c.conf + c.bonus, true
	}
	return nil, 0, false
}

func (p *PatternParser) parseAltitude(text string, _ []string) (av.CommandPart, float64, bool) {
	vertical := func(s string) *av.VerticalDirection {
		v := av.VerticalDirection(s)
		return &v
	}

	if m := altChangeFLRe.FindStringSubmatch(text); m != nil {
		fl, _ := strconv.Atoi(m[3])
		conf := 0.7 + 0.2
		if m[2] != "" {
			conf += 0.1
		}
		return av.ChangeAltitude{
			Altitude: av.FlightLevel(uint(fl)),
			Maintain: m[2] != "",
			Vertical: vertical(m[1]),
		}, conf, true
	}
	if m := altChangeFeetRe.FindStringSubmatch(text); m != nil {
		thousands, _ := strconv.Atoi(m[3])
		rest, _ := strconv.Atoi(m[4])
		conf := 0.7 + 0.15
		if m[2] != "" {
			conf += 0.1
		}
		return av.ChangeAltitude{
			Altitude: av.AltitudeFromFeet(float64(thousands*1000 + rest)),
			Maintain: m[2] != "",
			Vertical: vertical(m[1]),
		}, conf, true
	}
	if m := altMaintFLRe.FindStringSubmatch(text); m != nil {
		fl, _ := strconv.Atoi(m[1])
		return av.ChangeAltitude{Altitude: av.FlightLevel(uint(fl)), Maintain: true}, 0.8 + 0.2, true
	}
	if m := altMaintSplitRe.FindStringSubmatch(text); m != nil {
		thousands, _ := strconv.Atoi(m[1])
		rest, _ := strconv.Atoi(m[2])
		return av.ChangeAltitude{
			Altitude: av.AltitudeFromFeet(float64(thousands*1000 + rest)),
			Maintain: true,
		}, 0.8 + 0.15, true
	}
	if m := altMaintFeetRe.FindStringSubmatch(text); m != nil {
		ft, _ := strconv.Atoi(m[1])
		return av.ChangeAltitude{
			Altitude: av.AltitudeFromFeet(float64(ft)),
			Maintain: true,
		}, 0.8 + 0.15, true
	}
	return nil, 0, false
}

func (p *PatternParser) parseFrequency(text string, _ []string) (av.CommandPart, float64, bool) {
	type match struct {
		station  string
		num, dec string
		spoken   bool
	}
	var fm *match

	if m := freqContactRe.FindStringSubmatch(text); m != nil {
		fm = &match{station: m[1], num: m[2], dec: m[3]}
	} else if m := freqSpokenRe.FindStringSubmatch(text); m != nil {
		fm = &match{station: m[1], num: m[2] + m[3] + m[4], dec: m[5], spoken: true}
	} else if m := freqSpokenPointRe.FindStringSubmatch(text); m != nil {
		fm = &match{station: m[1], num: m[2] + m[3] + m[4], dec: m[5], spoken: true}
	} else if m := freqBareRe.FindStringSubmatch(text); m != nil {
		fm = &match{num: m[1], dec: m[2]}
	}
	if fm == nil {
		return nil, 0, false
	}

	num, _ := strconv.Atoi(fm.num)
	dec, _ := strconv.Atoi(fm.dec)
	freq := av.Frequency{Num: uint(num), Dec: uint(dec)}
	if !freq.Valid() {
		return nil, 0, false
	}

	conf := 0.8
	if fm.spoken {
		conf = 0.7
	}
	if knownStations[fm.station] {
		conf += 0.15
	}
	if strings.Contains(text, "contact") {
		conf += 0.05
	}
	return av.ContactFrequency{Frequency: freq, Station: fm.station}, conf, true
}

func (p *PatternParser) parseRadarContact(text string, span []string) (av.CommandPart, float64, bool) {
	if text == "radar contact" {
		return av.RadarContact{}, 0.98, true
	}
	if len(span) <= 3 && strings.Contains(text, "radar") && strings.Contains(text, "contact") {
		return av.RadarContact{}, 0.85, true
	}
	return nil, 0, false
}

func (p *PatternParser) parseTurn(text string, _ []string) (av.CommandPart, float64, bool) {
	if numericHeadingRe.MatchString(text) {
		return nil, 0, false
	}

	dirPart := func(s string) *av.TurnDirection {
		d := av.TurnDirection(s)
		return &d
	}
	if text == "turn left" || text == "turn right" {
		return av.TurnBy{Degrees: 30, Direction: dirPart(strings.TrimPrefix(text, "turn "))}, 0.95, true
	}
	if m := turnRe.FindStringSubmatch(text); m != nil {
		degrees, conf := 30.0, 0.8
		if m[2] != "" {
			n, _ := strconv.Atoi(m[2])
			degrees, conf = float64(n), 0.95
		}
		return av.TurnBy{Degrees: degrees, Direction: dirPart(m[1])}, conf, true
	}
	return nil, 0, false
}

func (p *PatternParser) parseDirect(text string, _ []string) (av.CommandPart, float64, bool) {
	m := directRe.FindStringSubmatch(text)
	if m == nil {
		return nil, 0, false
	}
	conf := 0.85
	if m[1] != "" {
		conf += 0.05
	}
	return av.ProceedDirect{Waypoint: strings.ToUpper(m[2])}, conf, true
}

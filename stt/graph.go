package stt

import (
	"regexp"
	"strings"

	av "github.com/mkoch/atcspeech/aviation"
)

// parseState is a node in the state-transition graph.
type parseState int

const (
	sStart parseState = iota
	sExpectingCallsign
	sExpectingCommand
	sTurnCommand
	sClimbCommand
	sDescendCommand
	sContactCommand
	sExpectingDirection
	sExpectingHeading
	sExpectingAltitude
	sExpectingStation
	sExpectingFrequency
	sCommandComplete
	sParseComplete
)

var stateNames = [...]string{
	"Start", "ExpectingCallsign", "ExpectingCommand", "TurnCommand",
	"ClimbCommand", "DescendCommand", "ContactCommand", "ExpectingDirection",
	"ExpectingHeading", "ExpectingAltitude", "ExpectingStation",
	"ExpectingFrequency", "CommandComplete", "ParseComplete",
}

func (s parseState) String() string { return stateNames[s] }

// parseEdge is a weighted transition: traversing it multiplies the path
// confidence by confidence and by the matcher's own score.
type parseEdge struct {
	from, to   parseState
	matcher    tokenMatcher
	confidence float64
	consume    bool
}

// stationName distinguishes an extracted station from other string values
// floating through the search.
type stationName string

type pathStep struct {
	edge  *parseEdge
	token string
	value any
}

type candidate struct {
	path       []pathStep
	confidence float64
	final      parseState
	consumed   int
}

// GraphParser parses by searching for the highest-confidence path through
// a fixed state graph, one matcher per edge. It tolerates fuzzier input
// than the pattern parser but recognizes a narrower command set. Immutable
// once built; safe for concurrent use.
type GraphParser struct {
	edges     []parseEdge
	norm      *Normalizer
	threshold float64
}

func NewGraphParser(cfg *Config, resolver *AirlineResolver) (*GraphParser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	norm, err := NewNormalizer(cfg)
	if err != nil {
		return nil, err
	}
	g := &GraphParser{
		norm:      norm,
		threshold: cfg.ConfidenceThreshold,
	}
	g.build(cfg, resolver)
	return g, nil
}

// build adds the edge set. Edge confidences are hand-tuned; matcher scores
// multiply in on top of them during the search.
func (g *GraphParser) build(cfg *Config, resolver *AirlineResolver) {
	ft := cfg.FuzzyThreshold

	directions := map[string]any{}
	for w, d := range cfg.DirectionWords {
		directions[w] = d
	}
	stations := map[string]any{
		"tower": stationName("tower"), "ground": stationName("ground"),
		"approach": stationName("approach"),
	}

	add := func(from, to parseState, m tokenMatcher, conf float64, consume bool) {
		g.edges = append(g.edges, parseEdge{from, to, m, conf, consume})
	}

	add(sStart, sExpectingCallsign, airlineMatcher{resolver}, 0.9, true)
	add(sExpectingCallsign, sExpectingCommand, optionalMatcher{exactMatcher{","}}, 0.8, true)

	add(sExpectingCommand, sTurnCommand, oneOfMatcher{options: []string{"turn", "fly"}}, 0.95, true)
	for w, d := range cfg.AltitudeWords {
		to := sClimbCommand
		if d == av.Descend {
			to = sDescendCommand
		}
		add(sExpectingCommand, to, exactMatcher{w}, 0.95, true)
	}
	add(sExpectingCommand, sContactCommand, exactMatcher{"contact"}, 0.95, true)

	add(sTurnCommand, sExpectingDirection, oneOfMatcher{options: []string{"left", "right"}, values: directions}, 0.9, true)
	add(sTurnCommand, sExpectingHeading, fuzzyMatcher{"heading", ft}, 0.9, true)
	add(sExpectingDirection, sExpectingHeading, fuzzyMatcher{"heading", ft}, 0.85, true)
	add(sExpectingDirection, sCommandComplete, optionalMatcher{exactMatcher{"turn"}}, 0.7, false)
	add(sExpectingHeading, sCommandComplete, numberMatcher{numberHeading}, 0.9, true)

	for _, from := range []parseState{sClimbCommand, sDescendCommand} {
		add(from, sExpectingAltitude, oneOfMatcher{options: []string{"to", "and", "maintain"}}, 0.7, true)
		add(from, sExpectingAltitude, fuzzyMatcher{"flight", ft}, 0.8, true)
	}
	add(sExpectingAltitude, sCommandComplete, oneOfMatcher{options: []string{"level", "feet"}}, 0.7, true)
	add(sExpectingAltitude, sCommandComplete, numberMatcher{numberAltitude}, 0.9, true)

	add(sContactCommand, sExpectingStation, oneOfMatcher{options: []string{"tower", "ground", "approach"}, values: stations}, 0.9, true)
	add(sExpectingStation, sExpectingFrequency, numberMatcher{numberFrequency}, 0.9, true)
	add(sExpectingFrequency, sCommandComplete, patternMatcher{regexp.MustCompile(`\d+\.\d+`)}, 0.85, true)

	add(sCommandComplete, sExpectingCommand, oneOfMatcher{options: []string{"and", "then", ","}}, 0.5, true)
	add(sCommandComplete, sParseComplete, optionalMatcher{patternMatcher{regexp.MustCompile(`.*`)}}, 0.8, false)
}

// Parse searches the graph for the best path through the normalized
// utterance.
func (g *GraphParser) Parse(text string) ParseResult {
	tokens := g.norm.Normalize(text)
	logParse("graph: tokens %v", tokens)

	var candidates []candidate
	g.explore(sStart, tokens, 0, 1.0, nil, &candidates)

	best, ok := pickWinner(candidates)
	if !ok {
		return ParseResult{
			Kind:    ResultFailed,
			Reason:  "No complete parse path found",
			RawText: text,
		}
	}
	logParse("graph: winner conf %.3f consumed %d/%d", best.confidence, best.consumed, len(tokens))

	return g.assemble(best, tokens, text)
}

func (g *GraphParser) explore(state parseState, tokens []string, index int, conf float64, path []pathStep, out *[]candidate) {
	if index >= len(tokens) || state == sParseComplete {
		*out = append(*out, candidate{
			path:       path,
			confidence: conf,
			final:      state,
			consumed:   index,
		})
		return
	}
	if len(path) > 2*len(tokens) {
		return
	}

	for i := range g.edges {
		edge := &g.edges[i]
		if edge.from != state {
			continue
		}
		score, value, ok := edge.matcher.match(tokens[index], index, tokens)
		if !ok {
			continue
		}
		next := conf * edge.confidence * score
		if next <= g.threshold {
			continue
		}
		nextIndex := index
		if edge.consume {
			nextIndex++
		}
		step := pathStep{edge: edge, token: tokens[index], value: value}
		g.explore(edge.to, tokens, nextIndex, next, append(path[:len(path):len(path)], step), out)
	}
}

// pickWinner selects the best candidate ending in CommandComplete or
// ParseComplete: highest confidence, then most tokens consumed, then the
// shorter path.
func pickWinner(candidates []candidate) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range candidates {
		if c.final != sParseComplete && c.final != sCommandComplete {
			continue
		}
		if !found || c.confidence > best.confidence ||
			(c.confidence == best.confidence && c.consumed > best.consumed) ||
			(c.confidence == best.confidence && c.consumed == best.consumed && len(c.path) < len(best.path)) {
			best = c
			found = true
		}
	}
	return best, found
}

// assemble converts the winning path's extracted values into commands.
// Command and callsign confidences are fixed at 0.8 for now.
// TODO: derive these from the path confidence instead.
func (g *GraphParser) assemble(best candidate, tokens []string, raw string) ParseResult {
	const placeholderConfidence = 0.8

	parsed := &ParsedCommand{Callsign: "UNKNOWN"}

	var (
		dir      *av.TurnDirection
		heading  *float64
		altitude *uint
		freq     *av.Frequency
		station  string
		vertical *av.VerticalDirection
		src      []string
	)
	reset := func() {
		dir, heading, altitude, freq, vertical = nil, nil, nil, nil, nil
		station = ""
		src = nil
	}

	flush := func() {
		var cmd av.CommandPart
		switch {
		case heading != nil:
			cmd = av.FlyHeading{Heading: av.NewHeading(*heading)}
		case altitude != nil:
			cmd = av.ChangeAltitude{
				Altitude: av.AltitudeFromFeet(float64(*altitude)),
				Vertical: vertical,
			}
		case freq != nil:
			cmd = av.ContactFrequency{Frequency: *freq, Station: station}
		case dir != nil:
			cmd = av.TurnBy{Degrees: 30, Direction: dir}
		default:
			reset()
			return
		}
		parsed.Commands = append(parsed.Commands, CommandWithConfidence{
			Command:    cmd,
			Confidence: placeholderConfidence,
			SourceText: strings.Join(src, " "),
		})
		reset()
	}

	for _, step := range best.path {
		if step.edge.to == sExpectingCommand {
			// Entering a new command; callsign and connector tokens
			// are not part of its source text.
			src = nil
		} else if step.edge.consume {
			src = append(src, step.token)
		}

		switch step.edge.to {
		case sClimbCommand:
			v := av.Climb
			vertical = &v
		case sDescendCommand:
			v := av.Descend
			vertical = &v
		}

		switch v := step.value.(type) {
		case av.TurnDirection:
			dir = &v
		case float64:
			heading = &v
		case uint:
			altitude = &v
		case av.Frequency:
			freq = &v
		case stationName:
			station = string(v)
		case string:
			if step.edge.to == sExpectingCallsign && parsed.Callsign == "UNKNOWN" {
				parsed.Callsign = v
			}
		}

		if step.edge.to == sCommandComplete {
			flush()
		}
	}
	if parsed.Callsign != "UNKNOWN" {
		parsed.CallsignConfidence = placeholderConfidence
	}

	if best.consumed >= len(tokens) {
		return ParseResult{Kind: ResultSuccess, Parsed: parsed}
	}
	return ParseResult{
		Kind:          ResultPartialSuccess,
		Parsed:        parsed,
		UnparsedParts: tokens[best.consumed:],
	}
}

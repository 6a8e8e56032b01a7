// Package stt turns transcribed ATC radio transmissions into structured
// clearances: a callsign plus the commands addressed to it, each with a
// confidence score. Two parser strategies coexist: a probabilistic
// state-graph search that tolerates fuzzy transcriptions, and a greedy
// regex-driven parser that recognizes a wider command vocabulary.
package stt

import (
	"context"
	"fmt"

	av "github.com/mkoch/atcspeech/aviation"
	"github.com/mkoch/atcspeech/log"
	"github.com/mkoch/atcspeech/speech"
)

type Strategy int

const (
	StrategyPattern Strategy = iota
	StrategyGraph
)

func (s Strategy) String() string {
	if s == StrategyGraph {
		return "graph"
	}
	return "pattern"
}

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "pattern":
		return StrategyPattern, nil
	case "graph":
		return StrategyGraph, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// Recognizer is the parse entry point. Construct one at startup and share
// it freely; it is immutable and safe for concurrent use.
type Recognizer struct {
	pattern  *PatternParser
	graph    *GraphParser
	strategy Strategy
	lg       *log.Logger
}

type Option func(*Recognizer)

func WithStrategy(s Strategy) Option {
	return func(r *Recognizer) { r.strategy = s }
}

func WithLogger(lg *log.Logger) Option {
	return func(r *Recognizer) { r.lg = lg }
}

// New builds both parsers over a shared airline resolver. Configuration
// problems (malformed patterns, bad thresholds) surface here; parsing
// itself never errors.
func New(index *av.AirlineIndex, cfg *Config, opts ...Option) (*Recognizer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	resolver := NewAirlineResolver(index, cfg)

	pattern, err := NewPatternParser(cfg, resolver)
	if err != nil {
		return nil, err
	}
	graph, err := NewGraphParser(cfg, resolver)
	if err != nil {
		return nil, err
	}

	r := &Recognizer{pattern: pattern, graph: graph}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Parse runs the selected strategy over one transmission.
func (r *Recognizer) Parse(text string) ParseResult {
	var res ParseResult
	switch r.strategy {
	case StrategyGraph:
		res = r.graph.Parse(text)
	default:
		res = r.pattern.Parse(text)
	}
	r.lg.Debugf("parse [%s] %q -> %s", r.strategy, text, res)
	return res
}

// ParseAudio transcribes audio through the given provider and parses the
// resulting text.
func (r *Recognizer) ParseAudio(ctx context.Context, audio speech.AudioData, p speech.Provider) (ParseResult, error) {
	text, err := p.Transcribe(ctx, audio)
	if err != nil {
		return ParseResult{}, fmt.Errorf("transcribing: %w", err)
	}
	r.lg.Debugf("transcribed %.1fs of audio: %q", audio.Duration().Seconds(), text)
	return r.Parse(text), nil
}

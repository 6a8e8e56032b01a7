package stt

import (
	"fmt"
	"strings"

	av "github.com/mkoch/atcspeech/aviation"
)

// CommandWithConfidence pairs an extracted command with the parser's
// confidence in it and the input text it was extracted from.
type CommandWithConfidence struct {
	Command    av.CommandPart
	Confidence float64
	SourceText string
}

// ParsedCommand is a recognized clearance: who it addresses and what it
// instructs, in transmission order.
type ParsedCommand struct {
	Callsign           string
	CallsignConfidence float64
	Commands           []CommandWithConfidence
}

type ResultKind int

const (
	ResultFailed ResultKind = iota
	ResultSuccess
	ResultPartialSuccess
	ResultCallsignOnly
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultPartialSuccess:
		return "partial"
	case ResultCallsignOnly:
		return "callsign-only"
	default:
		return "failed"
	}
}

// ParseResult is the outcome of one parse. Parsing never returns an
// error; malformed input classifies as Failed instead.
type ParseResult struct {
	Kind ResultKind

	// Parsed is set for Success and PartialSuccess.
	Parsed *ParsedCommand

	// UnparsedParts holds tokens no sub-parser claimed, for
	// PartialSuccess.
	UnparsedParts []string

	// Callsign is set for CallsignOnly.
	Callsign string

	// Reason and RawText describe a Failed parse.
	Reason  string
	RawText string
}

func (r ParseResult) String() string {
	switch r.Kind {
	case ResultSuccess, ResultPartialSuccess:
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s (%.2f)", r.Kind, r.Parsed.Callsign, r.Parsed.CallsignConfidence)
		for _, c := range r.Parsed.Commands {
			fmt.Fprintf(&b, "; %s (%.2f)", c.Command, c.Confidence)
		}
		if len(r.UnparsedParts) > 0 {
			fmt.Fprintf(&b, "; unparsed: %s", strings.Join(r.UnparsedParts, " "))
		}
		return b.String()
	case ResultCallsignOnly:
		return fmt.Sprintf("%s: %s", r.Kind, r.Callsign)
	default:
		return fmt.Sprintf("%s: %s", r.Kind, r.Reason)
	}
}

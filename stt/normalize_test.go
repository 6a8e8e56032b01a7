package stt

import (
	"errors"
	"strings"
	"testing"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		in   string
		want string
	}{
		{"Delta 123, Fly Heading 270!", "delta 123 fly heading 270"},
		{"  turn left heading two seven zero  ", "turn left heading 2 7 0"},
		{"united flyheading 090", "united fly heading 090"},
		{"one two tree point fife", "1 2 3.5"},
		{"climbto flight level tree fife zero", "climb to flight level 3 5 0"},
		{"contact tower 121.5", "contact tower 121.5"},
		{"descend.", "descend"},
		{"what?!", "what"},
		{"niner niner", "9 9"},
	}
	for _, test := range tests {
		got := strings.Join(n.Normalize(test.in), " ")
		if got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

// Normalization must be a fixed point of itself: feeding the joined token
// output back through the pipeline changes nothing.
func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	for _, in := range []string{
		"Lufthansa 123, turn left 30 degrees",
		"United five four six, contact tower one two one point five",
		"delta 123 fly hedding 090",
		"climbto flight level tree fife zero",
		"contact tower 121.5",
	} {
		once := n.Normalize(in)
		twice := n.Normalize(strings.Join(once, " "))
		if strings.Join(once, " ") != strings.Join(twice, " ") {
			t.Errorf("not idempotent for %q: %v then %v", in, once, twice)
		}
	}
}

func TestNormalizePreservesDecimalPoint(t *testing.T) {
	n := newTestNormalizer(t)
	tokens := n.Normalize("contact ground 121.9.")
	want := []string{"contact", "ground", "121.9"}
	if len(tokens) != len(want) {
		t.Fatalf("got %v", tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("got %v, want %v", tokens, want)
		}
	}
}

func TestDigitStringKeepsPunctuation(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.DigitString("united four five six, descend")
	if got != "united 4 5 6, descend" {
		t.Errorf("got %q", got)
	}
}

func TestNewNormalizerBadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberWords = map[string]uint{"(": 1}

	_, err := NewNormalizer(cfg)
	if err == nil {
		t.Fatal("expected error for malformed number word")
	}
	var nerr *NormalizationError
	if !errors.As(err, &nerr) {
		t.Fatalf("got %T, want *NormalizationError", err)
	}
}

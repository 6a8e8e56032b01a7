package stt

import "testing"

func TestResolveDirect(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		phrase string
		icao   string
		conf   float64
	}{
		{"lufthansa", "DLH", confAirlineDirect},
		{"Lufthansa", "DLH", confAirlineDirect},
		{"speedbird", "BAW", confAirlineDirect},
		{"united airlines", "UAL", confAirlineDirect}, // name fallback
		{"delta air lines", "DAL", confAirlineDirect},
	}
	for _, test := range tests {
		icao, conf, ok := r.Resolve(test.phrase)
		if !ok || icao != test.icao || conf != test.conf {
			t.Errorf("Resolve(%q) = %q %v %v, want %q %v", test.phrase, icao, conf, ok, test.icao, test.conf)
		}
	}
}

func TestResolvePhonetic(t *testing.T) {
	r := newTestResolver(t)

	icao, conf, ok := r.Resolve("kilo lima mike")
	if !ok || icao != "KLM" || conf != confAirlinePhonetic {
		t.Errorf("got %q %v %v, want KLM %v", icao, conf, ok, confAirlinePhonetic)
	}
}

func TestSubstitutePhoneticAllOrNothing(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		phrase  string
		sub     string
		changed bool
	}{
		{"kilo lima mike", "k l m", true},
		// A single non-alphabet word disables the substitution; "delta
		// airlines" must not become "d airlines".
		{"delta airlines", "delta airlines", false},
		{"kilo lima flight", "kilo lima flight", false},
	}
	for _, test := range tests {
		sub, changed := r.substitutePhonetic(test.phrase)
		if sub != test.sub || changed != test.changed {
			t.Errorf("substitutePhonetic(%q) = %q %v, want %q %v",
				test.phrase, sub, changed, test.sub, test.changed)
		}
	}
}

func TestResolvePartial(t *testing.T) {
	r := newTestResolver(t)

	// "lufthans" is a prefix of the stored "lufthansa" and 8/9 of its
	// length, comfortably above the 60% floor.
	icao, conf, ok := r.Resolve("lufthans")
	if !ok || icao != "DLH" || conf != confAirlinePartial {
		t.Errorf("got %q %v %v, want DLH %v", icao, conf, ok, confAirlinePartial)
	}

	// "luft" is only 4/9 of "lufthansa"; too short a fraction.
	if _, _, ok := r.Resolve("luft"); ok {
		t.Errorf("luft should not partial-match lufthansa")
	}

	// below the three-character minimum entirely
	if _, _, ok := r.Resolve("lu"); ok {
		t.Errorf("two characters should never match")
	}
}

func TestResolveMiss(t *testing.T) {
	r := newTestResolver(t)
	for _, phrase := range []string{"rutabaga airways", "delta lima hotel", ""} {
		if icao, _, ok := r.Resolve(phrase); ok {
			t.Errorf("Resolve(%q) unexpectedly found %q", phrase, icao)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := newTestResolver(t)
	first, conf1, ok1 := r.Resolve("american airl")
	for i := 0; i < 10; i++ {
		icao, conf, ok := r.Resolve("american airl")
		if icao != first || conf != conf1 || ok != ok1 {
			t.Fatalf("resolution changed between calls: %q vs %q", icao, first)
		}
	}
}

func TestPhoneticLetters(t *testing.T) {
	r := newTestResolver(t)

	if s, ok := r.PhoneticLetters("delta lima hotel"); !ok || s != "dlh" {
		t.Errorf("got %q %v", s, ok)
	}
	if _, ok := r.PhoneticLetters("delta banana"); ok {
		t.Errorf("non-NATO word should fail the conversion")
	}
	if _, ok := r.PhoneticLetters(""); ok {
		t.Errorf("empty phrase should fail")
	}
}

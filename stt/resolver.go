package stt

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	av "github.com/mkoch/atcspeech/aviation"
)

const (
	confAirlineDirect   = 0.95
	confAirlinePhonetic = 0.92
	confAirlinePartial  = 0.9
)

type resolution struct {
	icao string
	conf float64
	ok   bool
}

// AirlineResolver maps spoken airline phrases ("lufthansa", "united
// airlines", "delta lima hotel") to ICAO codes. Partial matching scans the
// index in insertion order, so resolutions are deterministic; they are also
// cached, since the same handful of airlines dominates any session.
type AirlineResolver struct {
	index    *av.AirlineIndex
	phonetic map[string]string
	cache    *lru.Cache[string, resolution]
}

func NewAirlineResolver(index *av.AirlineIndex, cfg *Config) *AirlineResolver {
	cache, err := lru.New[string, resolution](256)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &AirlineResolver{
		index:    index,
		phonetic: cfg.PhoneticAlphabet,
		cache:    cache,
	}
}

// Resolve returns the uppercase ICAO code for an airline phrase, with a
// confidence reflecting how it was found: exact callsign or name lookup,
// lookup after phonetic substitution, or partial prefix match.
func (r *AirlineResolver) Resolve(phrase string) (string, float64, bool) {
	spaced := strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	if spaced == "" {
		return "", 0, false
	}
	if res, ok := r.cache.Get(spaced); ok {
		return res.icao, res.conf, res.ok
	}

	icao, conf, ok := r.resolve(spaced)
	r.cache.Add(spaced, resolution{icao, conf, ok})
	return icao, conf, ok
}

func (r *AirlineResolver) resolve(spaced string) (string, float64, bool) {
	if icao, ok := r.lookup(spaced); ok {
		return strings.ToUpper(icao), confAirlineDirect, true
	}

	// Retry with NATO words collapsed to their letters, so "delta lima
	// hotel" finds the same airline "d l h" would.
	if sub, changed := r.substitutePhonetic(spaced); changed {
		if icao, ok := r.lookup(sub); ok {
			return strings.ToUpper(icao), confAirlinePhonetic, true
		}
	}

	if icao, ok := r.partialMatch(strings.ReplaceAll(spaced, " ", "")); ok {
		return strings.ToUpper(icao), confAirlinePartial, true
	}
	return "", 0, false
}

func (r *AirlineResolver) lookup(spaced string) (string, bool) {
	key := strings.ReplaceAll(spaced, " ", "")
	if icao, ok := r.index.LookupCallsign(key); ok {
		return icao, true
	}
	if icao, ok := r.index.LookupCallsign(spaced); ok {
		return icao, true
	}
	if icao, ok := r.index.LookupName(key); ok {
		return icao, true
	}
	return "", false
}

// substitutePhonetic replaces NATO alphabet words with their letters. The
// substitution only applies when every word of the phrase is in the
// alphabet; a mixed phrase is returned unchanged so it cannot partial-match
// through a half-spelled key.
func (r *AirlineResolver) substitutePhonetic(spaced string) (string, bool) {
	words := strings.Fields(spaced)
	for i, w := range words {
		letter, ok := r.phonetic[w]
		if !ok {
			return spaced, false
		}
		words[i] = letter
	}
	return strings.Join(words, " "), true
}

// PhoneticLetters converts a phrase made entirely of NATO alphabet words
// into the string of letters they spell. It fails if any word is not in
// the alphabet.
func (r *AirlineResolver) PhoneticLetters(phrase string) (string, bool) {
	var b strings.Builder
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		letter, ok := r.phonetic[w]
		if !ok {
			return "", false
		}
		b.WriteString(letter)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// partialMatch scans stored keys for a prefix relationship in either
// direction. Both strings must be at least three characters and the
// shorter at least 60% of the longer; the longest stored key wins, with
// ties broken by index insertion order.
func (r *AirlineResolver) partialMatch(search string) (string, bool) {
	if len(search) < 3 {
		return "", false
	}

	scan := func(keys []string, get func(string) (string, bool)) (string, bool) {
		best := ""
		for _, k := range keys {
			if len(k) < 3 || len(k) <= len(best) {
				continue
			}
			if !strings.HasPrefix(k, search) && !strings.HasPrefix(search, k) {
				continue
			}
			shorter, longer := len(k), len(search)
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			if 10*shorter >= 6*longer {
				best = k
			}
		}
		if best == "" {
			return "", false
		}
		return get(best)
	}

	if icao, ok := scan(r.index.CallsignKeys(), r.index.LookupCallsign); ok {
		return icao, true
	}
	return scan(r.index.NameKeys(), r.index.LookupName)
}

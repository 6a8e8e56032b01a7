package stt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// NormalizationError reports a config-supplied word whose boundary pattern
// failed to compile. It surfaces at Normalizer construction, never during
// parsing.
type NormalizationError struct {
	Pattern string
	Err     error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization pattern %q: %v", e.Pattern, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

type correction struct {
	from, to string
}

type numberPattern struct {
	re    *regexp.Regexp
	digit string
}

// Normalizer turns a raw transcript into the lowercase digit-substituted
// tokens the graph parser consumes. Normalization is idempotent: running
// the pipeline over its own joined output yields the same tokens.
type Normalizer struct {
	corrections []correction
	numbers     []numberPattern
}

func NewNormalizer(cfg *Config) (*Normalizer, error) {
	n := &Normalizer{}

	for from, to := range cfg.RecognitionCorrections {
		n.corrections = append(n.corrections, correction{from, to})
	}
	// Longest first so overlapping corrections apply deterministically.
	sort.Slice(n.corrections, func(i, j int) bool {
		a, b := n.corrections[i], n.corrections[j]
		if len(a.from) != len(b.from) {
			return len(a.from) > len(b.from)
		}
		return a.from < b.from
	})

	words := make([]string, 0, len(cfg.NumberWords))
	for w := range cfg.NumberWords {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		re, err := regexp.Compile(`\b` + w + `\b`)
		if err != nil {
			return nil, &NormalizationError{Pattern: w, Err: err}
		}
		n.numbers = append(n.numbers, numberPattern{re, fmt.Sprint(cfg.NumberWords[w])})
	}

	return n, nil
}

// Normalize runs the full pipeline: lowercase, punctuation strip,
// corrections, spoken decimal points, spoken digits, tokenize.
func (n *Normalizer) Normalize(text string) []string {
	s := stripPunctuation(strings.ToLower(strings.TrimSpace(text)))
	for _, c := range n.corrections {
		s = strings.ReplaceAll(s, c.from, c.to)
	}
	s = n.DigitString(s)
	return strings.Fields(s)
}

// DigitString substitutes spoken decimal points and digit words without
// touching anything else; the pattern parser applies this to its command
// text where punctuation must survive.
func (n *Normalizer) DigitString(s string) string {
	s = strings.ReplaceAll(s, " point ", ".")
	for _, num := range n.numbers {
		s = num.re.ReplaceAllString(s, num.digit)
	}
	return s
}

// stripPunctuation drops '.', ',', '!' and '?', except that a '.' between
// two digits is a decimal point and stays.
func stripPunctuation(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range rs {
		switch r {
		case ',', '!', '?':
			b.WriteRune(' ')
		case '.':
			if i > 0 && i+1 < len(rs) && unicode.IsDigit(rs[i-1]) && unicode.IsDigit(rs[i+1]) {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

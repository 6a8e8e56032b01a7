package stt

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"heading", "heading", 1},
		{"", "", 1},
		{"hedding", "heading", 6.0 / 7.0}, // {h,e,d,i,n,g} vs {h,e,a,d,i,n,g}
		{"abc", "xyz", 0},
		{"heading", "", 0},
		{"", "climb", 0},
		{"abc", "cab", 1}, // character sets ignore order
	}
	for _, test := range tests {
		got := Similarity(test.a, test.b)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", test.a, test.b, got, test.want)
		}
		// Jaccard is symmetric.
		if rev := Similarity(test.b, test.a); rev != got {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", test.a, test.b, got, rev)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	words := []string{"", "a", "heading", "hedding", "altitude", "contact", "kontakt"}
	for _, a := range words {
		for _, b := range words {
			s := Similarity(a, b)
			if s < 0 || s > 1 {
				t.Errorf("Similarity(%q, %q) = %v out of [0, 1]", a, b, s)
			}
		}
	}
}

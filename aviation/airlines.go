// aviation/airlines.go
// Copyright(c) 2026 atcspeech contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/klauspost/compress/zstd"
)

// AirlineEntry is one row of the airlines database dump. The dump encodes
// absent values as "\N" or the empty string and numbers as strings, so
// decoding goes through a shim type.
type AirlineEntry struct {
	ID       int
	Name     string
	Alias    string
	IATA     string
	ICAO     string
	Callsign string
	Country  string
	Active   bool
}

func (a *AirlineEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Alias    string `json:"alias"`
		IATA     string `json:"iata"`
		ICAO     string `json:"icao"`
		Callsign string `json:"callsign"`
		Country  string `json:"country"`
		Active   string `json:"active"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	absent := func(s string) string {
		if s == `\N` {
			return ""
		}
		return s
	}

	if id := absent(raw.ID); id != "" {
		n, err := strconv.Atoi(id)
		if err != nil {
			return fmt.Errorf("airline id %q: %w", raw.ID, err)
		}
		a.ID = n
	}
	a.Name = absent(raw.Name)
	a.Alias = absent(raw.Alias)
	a.IATA = absent(raw.IATA)
	a.ICAO = absent(raw.ICAO)
	a.Callsign = absent(raw.Callsign)
	a.Country = absent(raw.Country)
	a.Active = raw.Active == "Y" || raw.Active == "y"
	return nil
}

// AirlineIndex maps radiotelephony callsigns and airline names to ICAO
// codes. Both maps are keyed by lowercased, space-stripped strings and keep
// insertion order; that order is what partial-match scans iterate in, so
// lookups are deterministic for a given database file.
type AirlineIndex struct {
	callsignToICAO *orderedmap.OrderedMap
	nameToICAO     *orderedmap.OrderedMap
}

func airlineKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// NewAirlineIndex indexes airlines in list order. Inactive entries and
// entries without a usable ICAO code are skipped; an airline's name is only
// indexed if the same key has not already been claimed as a callsign.
func NewAirlineIndex(airlines []AirlineEntry) *AirlineIndex {
	idx := &AirlineIndex{
		callsignToICAO: orderedmap.New(),
		nameToICAO:     orderedmap.New(),
	}
	for _, a := range airlines {
		if !a.Active || a.ICAO == "" || a.ICAO == "N/A" {
			continue
		}
		icao := strings.ToLower(a.ICAO)
		if a.Callsign != "" {
			idx.callsignToICAO.Set(airlineKey(a.Callsign), icao)
		}
		if key := airlineKey(a.Name); key != "" {
			if _, taken := idx.callsignToICAO.Get(key); !taken {
				idx.nameToICAO.Set(key, icao)
			}
		}
	}
	return idx
}

// LookupCallsign returns the lowercase ICAO code for a space-stripped
// callsign key.
func (idx *AirlineIndex) LookupCallsign(key string) (string, bool) {
	v, ok := idx.callsignToICAO.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (idx *AirlineIndex) LookupName(key string) (string, bool) {
	v, ok := idx.nameToICAO.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// CallsignKeys returns the indexed callsign keys in insertion order.
func (idx *AirlineIndex) CallsignKeys() []string { return idx.callsignToICAO.Keys() }

func (idx *AirlineIndex) NameKeys() []string { return idx.nameToICAO.Keys() }

// LoadAirlines decodes the JSON airlines dump from r.
func LoadAirlines(r io.Reader) ([]AirlineEntry, error) {
	var airlines []AirlineEntry
	if err := json.NewDecoder(r).Decode(&airlines); err != nil {
		return nil, fmt.Errorf("decoding airlines: %w", err)
	}
	return airlines, nil
}

// LoadAirlinesFile reads the airlines dump from path, decompressing
// transparently if the file is zstd compressed.
func LoadAirlinesFile(path string) ([]AirlineEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return LoadAirlines(r)
}

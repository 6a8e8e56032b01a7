package aviation

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestNewHeading(t *testing.T) {
	for _, c := range []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{725, 5},
	} {
		if got := NewHeading(c.in).Degrees(); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NewHeading(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHeadingString(t *testing.T) {
	if s := NewHeading(90).String(); s != "090" {
		t.Errorf("got %q, want 090", s)
	}
	if s := NewHeading(0).String(); s != "360" {
		t.Errorf("heading zero read back as %q, want 360", s)
	}
}

func TestHeadingRequiredChange(t *testing.T) {
	for _, c := range []struct {
		from, to Heading
		want     float64
	}{
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 90, 0},
	} {
		if got := c.from.RequiredChange(c.to); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("RequiredChange(%v -> %v) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAltitudeFromFeet(t *testing.T) {
	a := AltitudeFromFeet(5000)
	if a.IsFlightLevel() || a.AsFeet() != 5000 {
		t.Errorf("5000 ft: got %v", a)
	}

	a = AltitudeFromFeet(35000)
	if !a.IsFlightLevel() || a.Level() != 350 {
		t.Errorf("35000 ft: got %v, want FL350", a)
	}

	// 18000 is the conversion boundary.
	if a := AltitudeFromFeet(18000); !a.IsFlightLevel() || a.Level() != 180 {
		t.Errorf("18000 ft: got %v, want FL180", a)
	}
	if a := AltitudeFromFeet(17900); a.IsFlightLevel() {
		t.Errorf("17900 ft: got %v, want feet", a)
	}
}

func TestParseFrequency(t *testing.T) {
	for _, c := range []struct {
		in    string
		want  Frequency
		valid bool
	}{
		{"121.5", Frequency{121, 5}, true},
		{"118.0", Frequency{118, 0}, true},
		{"137.999", Frequency{137, 999}, true},
		{"117.9", Frequency{117, 9}, false},
		{"138.0", Frequency{138, 0}, false},
		{"121.1000", Frequency{121, 1000}, false},
		{"121", Frequency{121, 0}, true},
	} {
		got, err := ParseFrequency(c.in)
		if err != nil {
			t.Errorf("ParseFrequency(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseFrequency(%q) = %v, want %v", c.in, got, c.want)
		}
		if got.Valid() != c.valid {
			t.Errorf("%v.Valid() = %v, want %v", got, got.Valid(), c.valid)
		}
	}

	if _, err := ParseFrequency("tower"); err == nil {
		t.Errorf("expected error for non-numeric frequency")
	}
}

const airlinesJSON = `[
  {"id": "3320", "name": "Lufthansa", "alias": "\\N", "iata": "LH",
   "icao": "DLH", "callsign": "LUFTHANSA", "country": "Germany", "active": "Y"},
  {"id": "5209", "name": "United Airlines", "alias": "", "iata": "UA",
   "icao": "UAL", "callsign": "UNITED", "country": "United States", "active": "Y"},
  {"id": "2009", "name": "Delta Air Lines", "alias": "Delta", "iata": "DL",
   "icao": "DAL", "callsign": "DELTA", "country": "United States", "active": "y"},
  {"id": "1", "name": "Defunct Air", "alias": "\\N", "iata": "\\N",
   "icao": "DFA", "callsign": "DEFUNCT", "country": "Nowhere", "active": "N"},
  {"id": "2", "name": "No Code Air", "alias": "\\N", "iata": "\\N",
   "icao": "N/A", "callsign": "NOCODE", "country": "Nowhere", "active": "Y"},
  {"id": "3", "name": "Speedbird Holidays", "alias": "\\N", "iata": "\\N",
   "icao": "BAW", "callsign": "SPEEDBIRD", "country": "United Kingdom", "active": "Y"}
]`

func loadTestAirlines(t *testing.T) []AirlineEntry {
	t.Helper()
	airlines, err := LoadAirlines(strings.NewReader(airlinesJSON))
	if err != nil {
		t.Fatal(err)
	}
	return airlines
}

func TestAirlineEntryDecode(t *testing.T) {
	airlines := loadTestAirlines(t)
	if len(airlines) != 6 {
		t.Fatalf("got %d airlines, want 6", len(airlines))
	}

	lh := airlines[0]
	if lh.ID != 3320 || lh.Alias != "" || lh.ICAO != "DLH" || !lh.Active {
		t.Errorf("Lufthansa decoded as %+v", lh)
	}
	if airlines[1].Alias != "" {
		t.Errorf("empty alias should decode as absent")
	}
	if !airlines[2].Active {
		t.Errorf(`active "y" should count as active`)
	}
	if airlines[3].Active {
		t.Errorf(`active "N" should count as inactive`)
	}
}

func TestAirlineIndex(t *testing.T) {
	idx := NewAirlineIndex(loadTestAirlines(t))

	for _, c := range []struct {
		key  string
		icao string
	}{
		{"lufthansa", "dlh"},
		{"united", "ual"},
		{"delta", "dal"},
		{"speedbird", "baw"},
	} {
		if got, ok := idx.LookupCallsign(c.key); !ok || got != c.icao {
			t.Errorf("LookupCallsign(%q) = %q, %v; want %q", c.key, got, ok, c.icao)
		}
	}

	// Inactive and code-less airlines are skipped entirely.
	if _, ok := idx.LookupCallsign("defunct"); ok {
		t.Errorf("inactive airline should not be indexed")
	}
	if _, ok := idx.LookupCallsign("nocode"); ok {
		t.Errorf(`airline with ICAO "N/A" should not be indexed`)
	}

	// Names are space-stripped and do not shadow callsign keys.
	if got, ok := idx.LookupName("unitedairlines"); !ok || got != "ual" {
		t.Errorf("LookupName(unitedairlines) = %q, %v", got, ok)
	}
	if _, ok := idx.LookupName("lufthansa"); ok {
		t.Errorf("name equal to an indexed callsign should be skipped")
	}

	// Insertion order is preserved for deterministic scans.
	keys := idx.CallsignKeys()
	want := []string{"lufthansa", "united", "delta", "speedbird"}
	if len(keys) != len(want) {
		t.Fatalf("callsign keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("callsign keys = %v, want %v", keys, want)
			break
		}
	}
}

func TestLoadAirlinesFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "airlines.json")
	if err := os.WriteFile(plain, []byte(airlinesJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	airlines, err := LoadAirlinesFile(plain)
	if err != nil {
		t.Fatal(err)
	}
	if len(airlines) != 6 {
		t.Fatalf("got %d airlines, want 6", len(airlines))
	}

	compressed := filepath.Join(dir, "airlines.json.zst")
	f, err := os.Create(compressed)
	if err != nil {
		t.Fatal(err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(airlinesJSON)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	fromZst, err := LoadAirlinesFile(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if len(fromZst) != len(airlines) {
		t.Fatalf("got %d airlines from zst, want %d", len(fromZst), len(airlines))
	}
	if fromZst[0].ICAO != airlines[0].ICAO {
		t.Errorf("zst decode mismatch: %+v vs %+v", fromZst[0], airlines[0])
	}
}

func TestLoadAirlinesBadJSON(t *testing.T) {
	if _, err := LoadAirlines(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}
}

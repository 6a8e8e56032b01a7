package stt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	av "github.com/mkoch/atcspeech/aviation"
)

// Config holds the tunable vocabulary and thresholds shared by both
// parsers. DefaultConfig returns a working setup; fields loaded from a
// YAML file overlay the corresponding defaults.
type Config struct {
	// RecognitionCorrections are literal textual substitutions applied
	// during normalization to patch up systematic transcription errors,
	// mostly words the recognizer likes to run together.
	RecognitionCorrections map[string]string `yaml:"recognition_corrections"`

	// NumberWords maps spoken digits, including the ICAO variants, to
	// their values.
	NumberWords map[string]uint `yaml:"number_words"`

	DirectionWords map[string]av.TurnDirection     `yaml:"direction_words"`
	AltitudeWords  map[string]av.VerticalDirection `yaml:"altitude_words"`

	// PhoneticAlphabet maps NATO words to the letters they spell.
	PhoneticAlphabet map[string]string `yaml:"phonetic_alphabet"`

	// FuzzyThreshold is the minimum similarity for a fuzzy token match.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`

	// ConfidenceThreshold is the minimum cumulative confidence for a
	// graph search path to be worth extending.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		RecognitionCorrections: map[string]string{
			"flyheading":   "fly heading",
			"turnleft":     "turn left",
			"turnright":    "turn right",
			"climbto":      "climb to",
			"descendto":    "descend to",
			"radarcontact": "radar contact",
			"fl ":          "flight level ",
		},
		NumberWords: map[string]uint{
			"zero": 0, "oh": 0,
			"one": 1, "wun": 1,
			"two": 2, "too": 2,
			"three": 3, "tree": 3,
			"four": 4, "fower": 4,
			"five": 5, "fife": 5,
			"six":   6,
			"seven": 7,
			"eight": 8, "ait": 8,
			"nine": 9, "niner": 9,
		},
		DirectionWords: map[string]av.TurnDirection{
			"left":  av.TurnLeft,
			"right": av.TurnRight,
		},
		AltitudeWords: map[string]av.VerticalDirection{
			"climb":   av.Climb,
			"descend": av.Descend,
			"descent": av.Descend,
		},
		PhoneticAlphabet: map[string]string{
			"alpha": "a", "alfa": "a",
			"bravo":   "b",
			"charlie": "c",
			"delta":   "d",
			"echo":    "e",
			"foxtrot": "f",
			"golf":    "g",
			"hotel":   "h",
			"india":   "i",
			"juliet":  "j", "juliett": "j",
			"kilo":     "k",
			"lima":     "l",
			"mike":     "m",
			"november": "n",
			"oscar":    "o",
			"papa":     "p",
			"quebec":   "q",
			"romeo":    "r",
			"sierra":   "s",
			"tango":    "t",
			"uniform":  "u",
			"victor":   "v",
			"whiskey":  "w",
			"xray":     "x", "x-ray": "x",
			"yankee": "y",
			"zulu":   "z",
		},
		FuzzyThreshold:      0.8,
		ConfidenceThreshold: 0.1,
	}
}

func (c *Config) Validate() error {
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy_threshold %v outside (0, 1]", c.FuzzyThreshold)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold >= 1 {
		return fmt.Errorf("confidence_threshold %v outside [0, 1)", c.ConfidenceThreshold)
	}
	return nil
}

// LoadConfig reads a YAML config from path, filling unspecified fields
// from DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes the config as YAML, mostly so users have a template to
// edit rather than writing one from scratch.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

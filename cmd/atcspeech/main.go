// atcspeech parses transcribed ATC radio transmissions into structured
// clearances from the command line. It is both a debugging surface for the
// parsers and a batch tool: feed it transcripts as arguments or on stdin
// and get per-transmission results, optionally as JSON.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	av "github.com/mkoch/atcspeech/aviation"
	"github.com/mkoch/atcspeech/log"
	"github.com/mkoch/atcspeech/speech"
	"github.com/mkoch/atcspeech/stt"
)

var (
	airlinesPath string
	configPath   string
	logLevel     string
	logDir       string

	strategyName string
	jsonOutput   bool

	lg *log.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "atcspeech",
		Short:         "Parse ATC radio transmissions into structured clearances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lg = log.New(logLevel, logDir)
		},
	}
	root.PersistentFlags().StringVar(&airlinesPath, "airlines", "", "airlines database (JSON, optionally .zst)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "recognition config YAML; defaults are built in")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for log files; empty logs to stderr only")

	parseCmd := &cobra.Command{
		Use:   "parse [transcript]...",
		Short: "Parse transmissions given as arguments, or one per line on stdin",
		RunE:  runParse,
	}
	parseCmd.Flags().StringVar(&strategyName, "strategy", "pattern", "parser strategy (pattern or graph)")
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit one JSON object per transmission")

	resolveCmd := &cobra.Command{
		Use:   "resolve <airline phrase>",
		Short: "Resolve a spoken airline name to its ICAO code",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runResolve,
	}

	wavCmd := &cobra.Command{
		Use:   "wav <file.wav>",
		Short: "Show duration and level statistics for a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE:  runWAV,
	}

	configCmd := &cobra.Command{
		Use:   "config <out.yaml>",
		Short: "Write the built-in recognition config for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stt.DefaultConfig().Save(args[0])
		},
	}

	root.AddCommand(parseCmd, resolveCmd, wavCmd, configCmd)

	if err := root.Execute(); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, "atcspeech:", err)
		os.Exit(1)
	}
}

func loadConfig() (*stt.Config, error) {
	if configPath == "" {
		return stt.DefaultConfig(), nil
	}
	cfg, err := stt.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func loadIndex() (*av.AirlineIndex, error) {
	if airlinesPath == "" {
		return av.NewAirlineIndex(nil), nil
	}
	entries, err := av.LoadAirlinesFile(airlinesPath)
	if err != nil {
		return nil, fmt.Errorf("loading airlines: %w", err)
	}
	lg.Infof("loaded %d airlines from %s", len(entries), airlinesPath)
	return av.NewAirlineIndex(entries), nil
}

func newRecognizer() (*stt.Recognizer, error) {
	strategy, err := stt.ParseStrategy(strategyName)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	index, err := loadIndex()
	if err != nil {
		return nil, err
	}
	return stt.New(index, cfg, stt.WithStrategy(strategy), stt.WithLogger(lg))
}

func runParse(cmd *cobra.Command, args []string) error {
	rec, err := newRecognizer()
	if err != nil {
		return err
	}

	emit := func(text string) error {
		result := rec.Parse(text)
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(resultJSON(text, result))
		}
		fmt.Println(result)
		return nil
	}

	if len(args) > 0 {
		return emit(strings.Join(args, " "))
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := emit(line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// jsonResult flattens a ParseResult for machine consumption; commands are
// rendered through their readback strings.
type jsonResult struct {
	Input              string        `json:"input"`
	Kind               string        `json:"kind"`
	Callsign           string        `json:"callsign,omitempty"`
	CallsignConfidence float64       `json:"callsign_confidence,omitempty"`
	Commands           []jsonCommand `json:"commands,omitempty"`
	Unparsed           []string      `json:"unparsed,omitempty"`
	Reason             string        `json:"reason,omitempty"`
}

type jsonCommand struct {
	Readback   string  `json:"readback"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source,omitempty"`
}

func resultJSON(input string, r stt.ParseResult) jsonResult {
	out := jsonResult{
		Input:    input,
		Kind:     r.Kind.String(),
		Callsign: r.Callsign,
		Unparsed: r.UnparsedParts,
		Reason:   r.Reason,
	}
	if r.Parsed != nil {
		out.Callsign = r.Parsed.Callsign
		out.CallsignConfidence = r.Parsed.CallsignConfidence
		for _, c := range r.Parsed.Commands {
			out.Commands = append(out.Commands, jsonCommand{c.Command.String(), c.Confidence, c.SourceText})
		}
	}
	return out
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	index, err := loadIndex()
	if err != nil {
		return err
	}
	resolver := stt.NewAirlineResolver(index, cfg)

	phrase := strings.Join(args, " ")
	icao, conf, ok := resolver.Resolve(phrase)
	if !ok {
		return fmt.Errorf("no airline matches %q", phrase)
	}
	fmt.Printf("%s (%.2f)\n", icao, conf)
	return nil
}

func runWAV(cmd *cobra.Command, args []string) error {
	a, err := speech.ReadWAVFile(args[0])
	if err != nil {
		return err
	}

	var peak float32
	for _, s := range a.Samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	fmt.Printf("%s: %.2fs, %d samples at %d Hz, peak %.3f\n",
		args[0], a.Duration().Seconds(), len(a.Samples), a.SampleRate, peak)
	return nil
}

// Command vmsim simulates page replacement over a memory trace.
//
//	vmsim -n <frames> -a <opt|clock|fifo|nru|all> [-r <refresh>] <tracefile>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sibexico/vmsim/vmsim"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// Flag errors have already been reported by the flag set
		var se *vmsim.SimError
		if errors.As(err, &se) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	level, _ := vmsim.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := simulate(cfg, stdout, logger); err != nil {
		logger.Error("simulation failed", slog.String("error", err.Error()))
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// parseConfig layers defaults, an optional JSON file, VMSIM_* variables and
// command-line flags, in increasing precedence
func parseConfig(args []string, stderr io.Writer) (*vmsim.Config, error) {
	fs := flag.NewFlagSet("vmsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: vmsim -n <frames> -a <opt|clock|fifo|nru|all> [-r <refresh>] <tracefile>")
		fs.PrintDefaults()
	}

	frames := fs.Int("n", 0, "number of frames")
	algorithm := fs.String("a", "", "replacement algorithm: opt, clock, fifo, nru or all")
	refresh := fs.Int("r", 0, "nru reference-bit reset interval")
	configPath := fs.String("config", "", "JSON configuration file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	quiet := fs.Bool("q", false, "suppress per-reference output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := vmsim.DefaultConfig()
	if *configPath != "" {
		loaded, err := vmsim.LoadConfigFromFile(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Frames = *frames
		case "a":
			cfg.Algorithm = *algorithm
		case "r":
			cfg.Refresh = *refresh
		case "log-level":
			cfg.LogLevel = *logLevel
		case "q":
			cfg.Quiet = *quiet
		}
	})

	switch fs.NArg() {
	case 1:
		cfg.TraceFile = fs.Arg(0)
	case 0:
		if cfg.TraceFile == "" {
			return nil, vmsim.ErrInvalidArgs("vmsim", len(args))
		}
	default:
		return nil, vmsim.ErrInvalidArgs("vmsim", len(args))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cfg *vmsim.Config, stdout io.Writer, logger *slog.Logger) error {
	algorithms, err := cfg.Algorithms()
	if err != nil {
		return err
	}

	if len(algorithms) > 1 {
		trace, err := vmsim.LoadTrace(cfg.TraceFile, logger)
		if err != nil {
			return err
		}
		summaries, err := vmsim.Compare(cfg.Frames, cfg.Refresh, trace, logger)
		if err != nil {
			return err
		}
		return vmsim.WriteComparison(stdout, summaries)
	}

	var out io.Writer
	if !cfg.Quiet {
		out = stdout
	}

	algorithm := algorithms[0]
	var summary vmsim.Summary

	if algorithm == vmsim.Optimal {
		// Optimal needs the future: load everything, index it, then simulate
		trace, err := vmsim.LoadTrace(cfg.TraceFile, logger)
		if err != nil {
			return err
		}
		summary, err = vmsim.Simulate(algorithm, cfg.Frames, cfg.Refresh, trace, out, logger)
		if err != nil {
			return err
		}
	} else {
		rc, compression, err := vmsim.OpenTrace(cfg.TraceFile)
		if err != nil {
			return err
		}
		defer rc.Close()
		logger.Debug("streaming trace",
			slog.String("path", cfg.TraceFile),
			slog.String("compression", compression.String()),
		)

		policy, err := vmsim.NewPolicy(algorithm, cfg.Frames, cfg.Refresh, nil)
		if err != nil {
			return err
		}
		sim := vmsim.NewSimulator(policy, vmsim.SimulatorOptions{Output: out, Logger: logger})
		summary, err = sim.Run(vmsim.NewTraceReader(rc, logger))
		if err != nil {
			return err
		}
	}

	return vmsim.WriteSummary(stdout, summary, algorithm == vmsim.NRU)
}

package vmsim

import (
	"bufio"
	"io"
	"log/slog"
)

// Summary is the result of one policy run
type Summary struct {
	Algorithm  Algorithm
	Frames     int
	Refresh    int // NRU only
	References uint64
	Faults     uint64
	Writes     uint64
}

// Simulator runs one policy over one trace
type Simulator struct {
	policy  Policy
	metrics *Metrics
	out     *bufio.Writer // Per-reference lines, nil when quiet
	logger  *slog.Logger
	refresh int
}

// SimulatorOptions configures a Simulator
type SimulatorOptions struct {
	Output io.Writer    // Per-reference lines; nil disables them
	Logger *slog.Logger // Defaults to slog.Default()
}

// NewSimulator creates a simulator driving policy
func NewSimulator(policy Policy, opts SimulatorOptions) *Simulator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Simulator{
		policy:  policy,
		metrics: NewMetrics(),
		logger:  logger.With(slog.String("algorithm", policy.Algorithm().String())),
	}
	if opts.Output != nil {
		s.out = bufio.NewWriter(opts.Output)
	}
	if nru, ok := policy.(*NRUPolicy); ok {
		s.refresh = nru.Refresh()
	}
	return s
}

// Metrics returns the run's metrics
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Step applies a single reference
func (s *Simulator) Step(ref Reference) (Decision, error) {
	d := s.policy.Access(ref)
	s.metrics.Observe(d)

	if d.Kind == FaultEviction {
		s.logger.Debug("evicted page",
			slog.Int("position", ref.Position),
			slog.Uint64("victim", d.Victim),
			slog.Bool("dirty", d.VictimDirty),
			slog.Int("scanned", d.Scanned),
		)
	}

	if s.out != nil {
		if _, err := s.out.WriteString(d.Line(s.policy.Algorithm() == Optimal)); err != nil {
			return d, err
		}
		if err := s.out.WriteByte('\n'); err != nil {
			return d, err
		}
	}
	return d, nil
}

// Run drives the whole trace through the policy and returns the summary
func (s *Simulator) Run(src TraceSource) (Summary, error) {
	for {
		ref, ok := src.Next()
		if !ok {
			break
		}
		if _, err := s.Step(ref); err != nil {
			return Summary{}, err
		}
	}
	if err := src.Err(); err != nil {
		return Summary{}, err
	}

	if s.out != nil {
		if err := s.out.Flush(); err != nil {
			return Summary{}, err
		}
	}

	s.metrics.LogMetrics(s.logger)
	return s.Summary(), nil
}

// Summary returns the counts accumulated so far
func (s *Simulator) Summary() Summary {
	return Summary{
		Algorithm:  s.policy.Algorithm(),
		Frames:     s.policy.Table().Cap(),
		Refresh:    s.refresh,
		References: s.metrics.GetReferences(),
		Faults:     s.metrics.GetFaults(),
		Writes:     s.metrics.GetWrites(),
	}
}

// Simulate runs a single algorithm over an in-memory trace. out may be nil.
func Simulate(algorithm Algorithm, frames, refresh int, trace []Reference, out io.Writer, logger *slog.Logger) (Summary, error) {
	policy, err := NewPolicy(algorithm, frames, refresh, trace)
	if err != nil {
		return Summary{}, err
	}
	sim := NewSimulator(policy, SimulatorOptions{Output: out, Logger: logger})
	return sim.Run(NewSliceTrace(trace))
}

// Compare runs every algorithm over the same trace without per-reference
// output
func Compare(frames, refresh int, trace []Reference, logger *slog.Logger) ([]Summary, error) {
	summaries := make([]Summary, 0, len(Algorithms))
	for _, a := range Algorithms {
		s, err := Simulate(a, frames, refresh, trace, nil, logger)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

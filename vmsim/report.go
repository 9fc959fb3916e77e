package vmsim

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteSummary prints the end-of-run report
func WriteSummary(w io.Writer, s Summary, showRefresh bool) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nAlgorithm: %s\n", strings.ToUpper(s.Algorithm.String()))
	if showRefresh {
		fmt.Fprintf(&b, "Refresh rate:     \t%9s\n", groupDigits(uint64(s.Refresh)))
	}
	fmt.Fprintf(&b, "Number of frames: \t%9s\n", groupDigits(uint64(s.Frames)))
	fmt.Fprintf(&b, "Total memory accesses: \t%9s\n", groupDigits(s.References))
	fmt.Fprintf(&b, "Total page faults: \t%9s\n", groupDigits(s.Faults))
	fmt.Fprintf(&b, "Total writes to disk:\t%9s\n", groupDigits(s.Writes))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteComparison prints one row per algorithm
func WriteComparison(w io.Writer, summaries []Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%-9s %9s %12s %12s %12s\n", "ALGORITHM", "FRAMES", "ACCESSES", "FAULTS", "WRITES")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%-9s %9s %12s %12s %12s\n",
			strings.ToUpper(s.Algorithm.String()),
			groupDigits(uint64(s.Frames)),
			groupDigits(s.References),
			groupDigits(s.Faults),
			groupDigits(s.Writes),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// groupDigits formats n with comma thousands separators
func groupDigits(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.trace")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	return path
}

const threeRefs = "0000a000 R\n0000b000 R\n0000a000 R\n"

func TestRunFIFO(t *testing.T) {
	path := writeTrace(t, threeRefs)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "1", "-a", "FIFO", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"0x0000000a - FAULT - no eviction\n",
		"0x0000000b - FAULT - evict clean (0xa)\n",
		"0x0000000a - FAULT - evict clean (0xb)\n",
		"Algorithm: FIFO\n",
		"Total memory accesses: \t        3\n",
		"Total page faults: \t        3\n",
		"Total writes to disk:\t        0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Refresh rate") {
		t.Error("Refresh rate is only reported for nru")
	}
}

func TestRunNRUQuiet(t *testing.T) {
	path := writeTrace(t, threeRefs)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "2", "-a", "nru", "-r", "10", "-q", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	out := stdout.String()
	if strings.Contains(out, "FAULT") {
		t.Errorf("Quiet run should not print per-reference lines:\n%s", out)
	}
	if !strings.Contains(out, "Refresh rate:     \t       10\n") {
		t.Errorf("Expected refresh rate line, got:\n%s", out)
	}
	if !strings.Contains(out, "Total page faults: \t        2\n") {
		t.Errorf("Expected 2 faults, got:\n%s", out)
	}
}

func TestRunOptimal(t *testing.T) {
	path := writeTrace(t, threeRefs)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "1", "-a", "opt", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "0x0000a000 - FAULT - no eviction\n") {
		t.Errorf("Optimal should print raw addresses, got:\n%s", stdout.String())
	}
}

func TestRunAll(t *testing.T) {
	path := writeTrace(t, threeRefs)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "1", "-a", "all", "-r", "5", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	for _, name := range []string{"OPT", "CLOCK", "FIFO", "NRU"} {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("Expected comparison row for %s, got:\n%s", name, stdout.String())
		}
	}
}

func TestRunErrors(t *testing.T) {
	path := writeTrace(t, threeRefs)
	missing := filepath.Join(t.TempDir(), "missing.trace")

	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{"unknown algorithm", []string{"-n", "4", "-a", "lru", path}, 2, "invalid algorithm"},
		{"no trace file", []string{"-n", "4", "-a", "fifo"}, 2, "invalid number of arguments"},
		{"extra arguments", []string{"-n", "4", "-a", "fifo", path, path}, 2, "invalid number of arguments"},
		{"nru without refresh", []string{"-n", "4", "-a", "nru", path}, 2, "refresh"},
		{"zero frames", []string{"-n", "0", "-a", "clock", path}, 2, "frame count"},
		{"missing trace", []string{"-n", "4", "-a", "clock", missing}, 1, "error opening trace file"},
		{"missing trace opt", []string{"-n", "4", "-a", "opt", missing}, 1, "error opening trace file"},
		{"bad flag", []string{"-z", path}, 2, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			if code != tt.code {
				t.Errorf("Expected exit %d, got %d", tt.code, code)
			}
			if !strings.Contains(stderr.String(), tt.contains) {
				t.Errorf("Expected diagnostic containing %q, got %q", tt.contains, stderr.String())
			}
			if strings.Contains(stdout.String(), "Total page faults") {
				t.Error("Failed runs must not report statistics")
			}
		})
	}
}

func TestRunConfigFile(t *testing.T) {
	trace := writeTrace(t, threeRefs)
	config := filepath.Join(t.TempDir(), "vmsim.json")
	data := `{"frames": 2, "algorithm": "clock", "trace_file": "` + filepath.ToSlash(trace) + `", "quiet": true}`
	if err := os.WriteFile(config, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", config}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "Algorithm: CLOCK\n") {
		t.Errorf("Expected clock summary, got:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Number of frames: \t        2\n") {
		t.Errorf("Expected 2 frames, got:\n%s", stdout.String())
	}
}

package vmsim

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// TraceSource yields references in trace order
type TraceSource interface {
	// Next returns the next reference, or false once the trace is exhausted
	Next() (Reference, bool)

	// Err returns the read error that ended the trace, if any
	Err() error
}

// TraceReader parses a whitespace-separated stream of "address intent"
// pairs. Addresses are hex, with or without a 0x prefix; intent is R or W.
// A malformed pair ends the trace.
type TraceReader struct {
	scanner   *bufio.Scanner
	logger    *slog.Logger
	position  int
	truncated bool
	done      bool
	err       error
}

// NewTraceReader creates a trace reader over r. logger may be nil.
func NewTraceReader(r io.Reader, logger *slog.Logger) *TraceReader {
	if logger == nil {
		logger = slog.Default()
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	return &TraceReader{
		scanner: scanner,
		logger:  logger,
	}
}

// Next returns the next reference
func (tr *TraceReader) Next() (Reference, bool) {
	if tr.done {
		return Reference{}, false
	}

	if !tr.scanner.Scan() {
		tr.finish()
		return Reference{}, false
	}
	addrTok := tr.scanner.Text()

	addr, err := parseAddress(addrTok)
	if err != nil {
		tr.truncate("invalid address", addrTok)
		return Reference{}, false
	}

	if !tr.scanner.Scan() {
		tr.finish()
		if tr.err == nil {
			tr.truncate("missing access", addrTok)
		}
		return Reference{}, false
	}
	accessTok := tr.scanner.Text()

	access, err := ParseAccess(accessTok)
	if err != nil {
		tr.truncate("invalid access", accessTok)
		return Reference{}, false
	}

	ref := Reference{Position: tr.position, Address: addr, Access: access}
	tr.position++
	return ref, true
}

// Err returns the read error that ended the trace, if any. Malformed content
// is not an error.
func (tr *TraceReader) Err() error {
	return tr.err
}

// Truncated reports whether the trace ended on malformed content
func (tr *TraceReader) Truncated() bool {
	return tr.truncated
}

// Count returns the number of references read so far
func (tr *TraceReader) Count() int {
	return tr.position
}

func (tr *TraceReader) finish() {
	tr.done = true
	if err := tr.scanner.Err(); err != nil {
		tr.err = ErrTraceRead("TraceReader.Next", err)
	}
}

func (tr *TraceReader) truncate(reason, token string) {
	tr.done = true
	tr.truncated = true
	tr.logger.Warn("trace truncated at malformed record",
		slog.String("reason", reason),
		slog.String("token", token),
		slog.Int("position", tr.position),
	)
}

func parseAddress(tok string) (uint64, error) {
	tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
	return strconv.ParseUint(tok, 16, 64)
}

// SliceTrace replays an in-memory trace
type SliceTrace struct {
	refs []Reference
	next int
}

// NewSliceTrace creates a source over refs
func NewSliceTrace(refs []Reference) *SliceTrace {
	return &SliceTrace{refs: refs}
}

func (st *SliceTrace) Next() (Reference, bool) {
	if st.next >= len(st.refs) {
		return Reference{}, false
	}
	ref := st.refs[st.next]
	st.next++
	return ref, true
}

func (st *SliceTrace) Err() error { return nil }

// Compression identifies how a trace file is encoded
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionSnappy
	CompressionLZ4
)

// String returns the compression name
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DetectCompression identifies the encoding from the leading bytes
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, snappyMagic):
		return CompressionSnappy
	case bytes.HasPrefix(header, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Decompress wraps r with the decoder matching its leading bytes
func Decompress(r io.Reader) (io.Reader, Compression, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(snappyMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, CompressionNone, err
	}

	c := DetectCompression(header)
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, err
		}
		return zr, c, nil
	case CompressionSnappy:
		return snappy.NewReader(br), c, nil
	case CompressionLZ4:
		return lz4.NewReader(br), c, nil
	default:
		return br, c, nil
	}
}

// traceFile is an open trace stream that closes its file
type traceFile struct {
	io.Reader
	file *os.File
}

func (tf *traceFile) Close() error {
	return tf.file.Close()
}

// OpenTrace opens a trace file for streaming, decompressing it if needed
func OpenTrace(path string) (io.ReadCloser, Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, CompressionNone, ErrTraceOpen("OpenTrace", path, err)
	}

	r, c, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, c, ErrTraceOpen("OpenTrace", path, err)
	}

	return &traceFile{Reader: r, file: f}, c, nil
}

// ReadTrace reads every reference from src into memory
func ReadTrace(src TraceSource) ([]Reference, error) {
	var refs []Reference
	for {
		ref, ok := src.Next()
		if !ok {
			break
		}
		refs = append(refs, ref)
	}
	return refs, src.Err()
}

// LoadTrace reads a whole trace file into memory. The file is mapped for the
// duration of the load.
func LoadTrace(path string, logger *slog.Logger) ([]Reference, error) {
	data, release, err := mapTrace(path)
	if err != nil {
		return nil, ErrTraceOpen("LoadTrace", path, err)
	}
	defer release()

	r, _, err := Decompress(bytes.NewReader(data))
	if err != nil {
		return nil, ErrTraceOpen("LoadTrace", path, err)
	}

	return ReadTrace(NewTraceReader(r, logger))
}

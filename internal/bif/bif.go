// Package bif encodes the snapshot format spec.md §6 describes for the
// external BiF test harness: a small sequence of tagged fields (integer
// or blob) terminated by newlines, reporting a subprocess run's exit
// code, stdout, and stderr.
package bif

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Snapshot is one recorded run, ready to encode as the three required
// BiF fields, in order: exit_code, stdout, stderr.
type Snapshot struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte

	// ID correlates a snapshot with its driving compiler invocation in
	// logs; it is not one of the three wire fields the harness reads.
	ID uuid.UUID
}

// NewSnapshot builds a Snapshot with a fresh correlation id.
func NewSnapshot(exitCode int, stdout, stderr []byte) Snapshot {
	return Snapshot{ExitCode: exitCode, Stdout: stdout, Stderr: stderr, ID: uuid.New()}
}

// Encode writes s to w in the exact field order and byte layout spec.md
// §6 requires. It does not write s.ID; that field is internal only.
func Encode(w io.Writer, s Snapshot) error {
	if err := writeIntField(w, "exit_code", int64(s.ExitCode)); err != nil {
		return errors.Wrap(err, "bif: encode exit_code")
	}
	if err := writeBlobField(w, "stdout", s.Stdout); err != nil {
		return errors.Wrap(err, "bif: encode stdout")
	}
	if err := writeBlobField(w, "stderr", s.Stderr); err != nil {
		return errors.Wrap(err, "bif: encode stderr")
	}
	return nil
}

func writeIntField(w io.Writer, name string, v int64) error {
	_, err := fmt.Fprintf(w, ":i %s %d\n", name, v)
	return err
}

func writeBlobField(w io.Writer, name string, v []byte) error {
	if _, err := fmt.Fprintf(w, ":b %s %d\n", name, len(v)); err != nil {
		return err
	}
	if _, err := w.Write(v); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

// Decode reads a Snapshot back from r, in the fixed exit_code/stdout/
// stderr field order. It is the encoder's inverse, used by the BiF
// harness's own consumer and by this package's tests.
func Decode(r io.Reader) (Snapshot, error) {
	br := bufio.NewReader(r)
	var s Snapshot

	exitCode, err := readIntField(br, "exit_code")
	if err != nil {
		return s, errors.Wrap(err, "bif: decode exit_code")
	}
	s.ExitCode = int(exitCode)

	stdout, err := readBlobField(br, "stdout")
	if err != nil {
		return s, errors.Wrap(err, "bif: decode stdout")
	}
	s.Stdout = stdout

	stderr, err := readBlobField(br, "stderr")
	if err != nil {
		return s, errors.Wrap(err, "bif: decode stderr")
	}
	s.Stderr = stderr

	return s, nil
}

func readFieldHeader(r *bufio.Reader, kind byte, name string) error {
	prefix := fmt.Sprintf(":%c %s ", kind, name)
	buf := make([]byte, len(prefix))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if string(buf) != prefix {
		return fmt.Errorf("bif: expected field header %q, got %q", prefix, string(buf))
	}
	return nil
}

func readIntField(r *bufio.Reader, name string) (int64, error) {
	if err := readFieldHeader(r, 'i', name); err != nil {
		return 0, err
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(trimNewline(line), 10, 64)
}

func readBlobField(r *bufio.Reader, name string) ([]byte, error) {
	if err := readFieldHeader(r, 'b', name); err != nil {
		return nil, err
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(trimNewline(line))
	if err != nil {
		return nil, fmt.Errorf("bif: invalid blob length for %q: %w", name, err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if _, err := r.ReadByte(); err != nil { // trailing newline, not counted
		return nil, err
	}
	return buf, nil
}

func trimNewline(s string) string {
	return string(bytes.TrimRight([]byte(s), "\n"))
}

// Package lineiter provides the two line-iteration adapters the overlap
// filter can run a subprocess reader through: a streaming adapter that
// yields lines as the subprocess produces them, and a slurping adapter
// that reads the subprocess to completion first. Both must give
// identical filtered output; only peak memory use differs (spec §9).
package lineiter

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
)

// Lines is the line-iterator contract both adapters satisfy. Next
// advances to the next line and reports whether one is available; Text
// returns the current line with its trailing newline stripped; Close
// releases the underlying subprocess and returns any error encountered,
// including a non-zero exit status.
type Lines interface {
	Next() bool
	Text() string
	Close() error
}

// procReader runs cmd and exposes its stdout as a Lines. Close closes
// the stdout pipe and waits for the process to exit. Acquisition of the
// process is scoped to the lifetime of the returned Lines: Close always
// releases it, even when the scanner errors out mid-stream.
type procReader struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	sc     *bufio.Scanner
	err    error
	closed bool
}

func start(cmd *exec.Cmd) (*procReader, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("lineiter: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("lineiter: starting %v: %w", cmd.Args, err)
	}
	return &procReader{cmd: cmd, stdout: stdout, sc: bufio.NewScanner(stdout)}, nil
}

// NewStream returns a Lines that reads cmd's stdout line by line as it
// is produced.
func NewStream(cmd *exec.Cmd) (Lines, error) {
	r, err := start(cmd)
	if err != nil {
		return nil, err
	}
	r.sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return r, nil
}

func (r *procReader) Next() bool {
	if r.err != nil {
		return false
	}
	if r.sc.Scan() {
		return true
	}
	r.err = r.sc.Err()
	return false
}

func (r *procReader) Text() string { return r.sc.Text() }

func (r *procReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.stdout.Close()
	waitErr := r.cmd.Wait()
	if r.err != nil {
		return fmt.Errorf("lineiter: reading %v: %w", r.cmd.Args, r.err)
	}
	if waitErr != nil {
		return fmt.Errorf("lineiter: subprocess %v: %w", r.cmd.Args, waitErr)
	}
	return nil
}

// slurped is a Lines backed by a fully-read, pre-split line slice.
type slurped struct {
	lines []string
	i     int
	proc  *procReader
}

// NewSlurp runs cmd to completion, buffering all of its stdout before
// any line becomes available. This uses more memory than NewStream but
// is simpler to reason about for small inputs, matching the original's
// default (non-"--stream") mode.
func NewSlurp(cmd *exec.Cmd) (Lines, error) {
	r, err := start(cmd)
	if err != nil {
		return nil, err
	}
	r.sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for r.sc.Scan() {
		lines = append(lines, r.sc.Text())
	}
	r.err = r.sc.Err()
	return &slurped{lines: lines, i: -1, proc: r}, nil
}

func (s *slurped) Next() bool {
	if s.i+1 >= len(s.lines) {
		return false
	}
	s.i++
	return true
}

func (s *slurped) Text() string { return s.lines[s.i] }

func (s *slurped) Close() error { return s.proc.Close() }

// New returns a Lines for cmd using the streaming adapter if stream is
// true, the slurping adapter otherwise (--stream CLI flag, spec §9).
func New(cmd *exec.Cmd, stream bool) (Lines, error) {
	if stream {
		return NewStream(cmd)
	}
	return NewSlurp(cmd)
}

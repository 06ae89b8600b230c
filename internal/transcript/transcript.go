// Package transcript records every line shown to or typed by the user.
//
// Console is the only way session code talks to the user, so recording is a
// property of the I/O boundary rather than something each command does.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Transcript is an append-only, chronological list of lines.
type Transcript struct {
	lines []string
}

func (t *Transcript) Append(line string) {
	t.lines = append(t.lines, line)
}

func (t *Transcript) Lines() []string {
	return slices.Clone(t.lines)
}

func (t *Transcript) Len() int {
	return len(t.lines)
}

// WriteTo writes one transcript entry per line.
func (t *Transcript) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range t.lines {
		m, err := bw.WriteString(line + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Save overwrites path with the transcript.
func (t *Transcript) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = t.WriteTo(f)
	return err
}

// LineReader yields one line of user input per call, without the line
// terminator. It returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// MaxLineSize is the longest input line a scanner reader accepts. It matches
// the longest line a card file may hold.
const MaxLineSize = 1024 * 1024

type scannerReader struct {
	sc *bufio.Scanner
}

// NewScannerReader reads lines from r. A trailing carriage return is dropped.
func NewScannerReader(r io.Reader) LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &scannerReader{sc: sc}
}

func (s *scannerReader) ReadLine() (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(s.sc.Text(), "\r"), nil
}

// Console prints to and reads from the user, recording both directions.
type Console struct {
	in  LineReader
	out io.Writer
	log *Transcript
}

func NewConsole(in LineReader, out io.Writer) *Console {
	return &Console{in: in, out: out, log: &Transcript{}}
}

// Println shows one line to the user and records it.
func (c *Console) Println(msg string) {
	c.log.Append(msg)
	_, _ = fmt.Fprintln(c.out, msg)
}

// Printf formats a line, then behaves like Println.
func (c *Console) Printf(format string, args ...any) {
	c.Println(fmt.Sprintf(format, args...))
}

// ReadLine reads and records one line of user input.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadLine()
	if err != nil {
		return "", err
	}
	c.log.Append(line)
	return line, nil
}

func (c *Console) Transcript() *Transcript {
	return c.log
}

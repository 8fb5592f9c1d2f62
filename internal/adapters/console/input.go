// Package console holds the typed prompt helpers for the interactive shell.
// Every reader loops until the input is syntactically valid, so the layers
// underneath only ever see typed values.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gymdesk/internal/domain/performance"
)

// Prompter reads typed values from an input stream, echoing prompts to an
// output stream.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter on the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// ReadLine prompts once and returns the trimmed line, which may be empty.
func (p *Prompter) ReadLine(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// ReadLineDefault prompts once and returns def when the reply is blank.
func (p *Prompter) ReadLineDefault(prompt, def string) string {
	s := p.ReadLine(prompt)
	if s == "" {
		return def
	}
	return s
}

// ReadInt re-prompts until the reply parses as an integer.
func (p *Prompter) ReadInt(prompt string) int {
	for {
		s := p.ReadLine(prompt)
		n, err := strconv.Atoi(s)
		if err == nil {
			return n
		}
		fmt.Fprintln(p.out, "Enter a valid integer.")
	}
}

// ReadIntRange re-prompts until the reply is an integer within [min, max].
func (p *Prompter) ReadIntRange(prompt string, min, max int) int {
	for {
		n := p.ReadInt(prompt)
		if n >= min && n <= max {
			return n
		}
		fmt.Fprintf(p.out, "Enter a number between %d and %d.\n", min, max)
	}
}

// ReadFloat re-prompts until the reply parses as a number.
func (p *Prompter) ReadFloat(prompt string) float64 {
	for {
		s := p.ReadLine(prompt)
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return v
		}
		fmt.Fprintln(p.out, "Enter a valid number.")
	}
}

// ReadYesNo re-prompts until the reply starts with y or n, in any case.
func (p *Prompter) ReadYesNo(prompt string) bool {
	for {
		s := strings.ToLower(p.ReadLine(prompt))
		if strings.HasPrefix(s, "y") {
			return true
		}
		if strings.HasPrefix(s, "n") {
			return false
		}
		fmt.Fprintln(p.out, "Please answer y/n.")
	}
}

// ReadDate re-prompts until the reply is a YYYY-MM-DD date.
func (p *Prompter) ReadDate(prompt string) time.Time {
	for {
		s := p.ReadLine(prompt)
		t, err := time.Parse("2006-01-02", s)
		if err == nil {
			return t
		}
		fmt.Fprintln(p.out, "Format must be YYYY-MM-DD.")
	}
}

// ReadMonth re-prompts until the reply is a YYYY-MM year-month.
func (p *Prompter) ReadMonth(prompt string) performance.Month {
	for {
		s := p.ReadLine(prompt)
		m, err := performance.ParseMonth(s)
		if err == nil {
			return m
		}
		fmt.Fprintln(p.out, "Format must be YYYY-MM.")
	}
}

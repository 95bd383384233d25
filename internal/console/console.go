package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"funmatch/internal/scoring"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
)

// Console is the synchronous prompt surface: a print sink and a line source.
type Console struct {
	mu       sync.Mutex
	in       *bufio.Reader
	out      io.Writer
	colorize bool
}

// New wraps in and out. Color is enabled only when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		colorize: ShouldColorize(out),
	}
}

// Writer returns the output sink.
func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) Println(args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Successf prints a green line on terminals.
func (c *Console) Successf(format string, args ...any) {
	c.colored(ansiGreen, format, args...)
}

// Warnf prints a yellow line on terminals.
func (c *Console) Warnf(format string, args ...any) {
	c.colored(ansiYellow, format, args...)
}

// Errorf prints a red line on terminals.
func (c *Console) Errorf(format string, args ...any) {
	c.colored(ansiRed, format, args...)
}

func (c *Console) colored(color, format string, args ...any) {
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if c.colorize {
		line = color + line + ansiReset
	}
	c.Println(line)
}

// ReadLine prints prompt and blocks for one line of input. The trailing
// newline and surrounding spaces are removed. io.EOF is returned only when
// the input closed before any text was read.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		c.mu.Lock()
		if c.colorize {
			fmt.Fprint(c.out, ansiBold+prompt+ansiReset)
		} else {
			fmt.Fprint(c.out, prompt)
		}
		c.mu.Unlock()
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Empty input takes defaultYes.
func (c *Console) Confirm(prompt string, defaultYes bool) (bool, error) {
	hint := " [y/N] "
	if defaultYes {
		hint = " [Y/n] "
	}
	answer, err := c.ReadLine(prompt + hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ShowCandidates renders a numbered candidate table.
func (c *Console) ShowCandidates(candidates []scoring.Candidate) {
	if len(candidates) == 0 {
		return
	}
	c.Println(RenderCandidates(candidates))
}

// ShouldColorize reports whether writer is an interactive terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

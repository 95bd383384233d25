package testsupport

import (
	"fmt"
	"io"
	"strings"

	"funmatch/internal/scoring"
)

// ScriptedConsole replays canned input lines and records everything shown.
// Once the lines run out ReadLine returns io.EOF.
type ScriptedConsole struct {
	lines   []string
	Output  strings.Builder
	Prompts []string
	Tables  [][]scoring.Candidate
}

// NewScriptedConsole returns a console that answers prompts with lines in order.
func NewScriptedConsole(lines ...string) *ScriptedConsole {
	return &ScriptedConsole{lines: lines}
}

func (c *ScriptedConsole) Println(args ...any) {
	fmt.Fprintln(&c.Output, args...)
}

func (c *ScriptedConsole) Printf(format string, args ...any) {
	fmt.Fprintf(&c.Output, format, args...)
}

func (c *ScriptedConsole) Warnf(format string, args ...any) {
	fmt.Fprintf(&c.Output, format+"\n", args...)
}

func (c *ScriptedConsole) ReadLine(prompt string) (string, error) {
	c.Prompts = append(c.Prompts, prompt)
	if len(c.lines) == 0 {
		return "", io.EOF
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

func (c *ScriptedConsole) Confirm(prompt string, defaultYes bool) (bool, error) {
	line, err := c.ReadLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (c *ScriptedConsole) ShowCandidates(candidates []scoring.Candidate) {
	c.Tables = append(c.Tables, append([]scoring.Candidate(nil), candidates...))
}

// Remaining returns the number of unread input lines.
func (c *ScriptedConsole) Remaining() int {
	return len(c.lines)
}

// LastTable returns the most recently shown candidates.
func (c *ScriptedConsole) LastTable() []scoring.Candidate {
	if len(c.Tables) == 0 {
		return nil
	}
	return c.Tables[len(c.Tables)-1]
}

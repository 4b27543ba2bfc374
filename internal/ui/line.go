package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/substantialcattle5/cleanfiles/internal/classify"
)

// ErrInvalidChoice is returned for input that is not a menu number
var ErrInvalidChoice = errors.New("invalid choice")

// ParseChoice parses "<n>" or "<n>*" and checks that n is between 1 and limit.
// The trailing star marks the choice as sticky.
func ParseChoice(input string, limit int) (int, bool, error) {
	input = strings.TrimSpace(input)
	sticky := strings.HasSuffix(input, "*")
	input = strings.TrimSuffix(input, "*")

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, input)
	}
	if n < 1 || n > limit {
		return 0, false, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidChoice, n, limit)
	}
	return n, sticky, nil
}

// LineChooser reads answers line by line. It serves pipes, scripts and tests
// where no terminal is attached.
type LineChooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineChooser creates a chooser reading from in and prompting on out
func NewLineChooser(in io.Reader, out io.Writer) *LineChooser {
	return &LineChooser{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF only comes once input is
// exhausted.
func (c *LineChooser) readLine() (string, error) {
	fmt.Fprint(c.out, "> ")
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ChooseAction lists labels and reads "<n>" or "<n>*" until valid
func (c *LineChooser) ChooseAction(labels []string) (int, bool, error) {
	fmt.Fprintln(c.out, "Available actions (<index>* to append that action always from now on):")
	for i, label := range labels {
		fmt.Fprintf(c.out, "\t%d. %s\n", i+1, label)
	}

	for {
		line, err := c.readLine()
		if err != nil {
			return 0, false, err
		}
		n, sticky, err := ParseChoice(line, len(labels))
		if err != nil {
			fmt.Fprintln(c.out, "Please provide proper number (with optional *)")
			continue
		}
		return n, sticky, nil
	}
}

// SelectFile lists paths and returns the 0-based index of the one to keep
func (c *LineChooser) SelectFile(paths []string) (int, error) {
	fmt.Fprintln(c.out, "Select file to keep:")
	for i, path := range paths {
		fmt.Fprintf(c.out, "\t%d. %s\n", i+1, path)
	}

	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		n, sticky, err := ParseChoice(line, len(paths))
		if err != nil || sticky {
			fmt.Fprintln(c.out, "Please provide proper number")
			continue
		}
		return n - 1, nil
	}
}

// NewName asks for a non-empty file name
func (c *LineChooser) NewName(path string) (string, error) {
	fmt.Fprintf(c.out, "Please provide new name for file %s\n", path)

	for {
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
		fmt.Fprintln(c.out, "Name must not be empty")
	}
}

// SelectMode lists the modes and reads a mode number
func (c *LineChooser) SelectMode() (classify.Mode, error) {
	modes := classify.Modes()
	fmt.Fprintln(c.out, "Available modes:")
	for _, m := range modes {
		fmt.Fprintf(c.out, "\t%d. %s\n", int(m), m.Description())
	}

	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		n, sticky, err := ParseChoice(line, len(modes))
		if err != nil || sticky {
			fmt.Fprintln(c.out, "Please provide proper number")
			continue
		}
		return modes[n-1], nil
	}
}

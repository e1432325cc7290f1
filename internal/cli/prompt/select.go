// Package prompt provides line-oriented interactive prompts for terminals
// where the full-screen interface is not used.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// Sentinel errors for prompts.
var (
	ErrNoOptions          = errors.New("no options to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Option is one numbered choice.
type Option struct {
	Label  string
	Detail string
}

// Selector handles interactive prompts. A Selector keeps one buffered
// reader so consecutive prompts can share an input stream.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Writer returns the writer prompts are printed to.
func (s *Selector) Writer() io.Writer {
	return s.writer
}

// Select prints title and the numbered options and returns the chosen
// index. Empty input picks def.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - ErrInvalidSelection if the input is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(title string, options []Option, def int) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	if def < 0 || def >= len(options) {
		def = 0
	}

	fmt.Fprintln(s.writer, title)
	for i, o := range options {
		if o.Detail != "" {
			fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, o.Label, o.Detail)
		} else {
			fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, o.Label)
		}
	}
	fmt.Fprintf(s.writer, "Select [%d]: ", def+1)

	input, err := s.readLine()
	if err != nil {
		return 0, err
	}
	if input == "" {
		return def, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(options))
	}
	return n - 1, nil
}

// Confirm asks a yes/no question. Empty input returns def.
func (s *Selector) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(s.writer, "%s [%s]: ", question, hint)

	input, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidSelection, "%q is not yes or no", input)
	}
}

// Input reads one line of free text. Empty input returns def.
func (s *Selector) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(s.writer, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(s.writer, "%s: ", label)
	}

	input, err := s.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}

func (s *Selector) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts.
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(input), nil
}

package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoAnswer is returned when the input ends before a valid answer.
var ErrNoAnswer = errors.New("selector: no answer given")

// TerminalPrompter asks questions on out and reads the answers line by line
// from in.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// AskIndex asks until the answer is an integer between 1 and max.
func (p *TerminalPrompter) AskIndex(ctx context.Context, question string, max int) (int, error) {
	if max < 1 {
		return 0, errors.New("selector: nothing to choose from")
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		fmt.Fprintf(p.out, "%s: ", question)
		line, err := p.in.ReadString('\n')
		if answer := strings.TrimSpace(line); answer != "" {
			n, convErr := strconv.Atoi(answer)
			if convErr == nil && n >= 1 && n <= max {
				return n, nil
			}
			fmt.Fprintf(p.out, "Please select one of the available options (1-%d)\n", max)
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return 0, ErrNoAnswer
		}
		if err != nil {
			return 0, fmt.Errorf("selector: reading answer: %w", err)
		}
	}
}

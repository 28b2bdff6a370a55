package warn

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console prompts on a terminal: an empty line ignores, a line starting
// with q or Q aborts, anything else is a replacement value.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a Console reading answers from in.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Prompt(_ string, allowReplace bool) (Response, error) {
	if allowReplace {
		fmt.Fprintln(c.out, "    Enter a replacement value to continue")
		fmt.Fprintln(c.out, "    Enter [cr] to ignore and continue")
		fmt.Fprintln(c.out, "    Enter Q to stop")
	} else {
		fmt.Fprintln(c.out, "    Enter [cr] to ignore and continue running the program")
		fmt.Fprintln(c.out, "    Enter Q to stop the program")
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return Response{}, err
		}
		if line == "" {
			// closed stdin: carry on as if non-interactive
			fmt.Fprintln(c.out, "Resuming ...")
			return Response{Action: Ignore}, nil
		}
	}
	answer := strings.TrimRight(line, "\r\n")
	switch {
	case answer == "":
		fmt.Fprintln(c.out, "Resuming ...")
		return Response{Action: Ignore}, nil
	case answer[0] == 'q' || answer[0] == 'Q':
		fmt.Fprintln(c.out, "Quitting ...")
		return Response{Action: Abort}, nil
	case allowReplace:
		fmt.Fprintln(c.out, "Resuming ...")
		return Response{Action: Replace, Value: answer}, nil
	default:
		fmt.Fprintln(c.out, "Resuming ...")
		return Response{Action: Ignore}, nil
	}
}

// Scripted answers from a fixed list, then ignores. Used for dry runs and tests.
type Scripted struct {
	Answers []string
	next    int
}

func (s *Scripted) Prompt(_ string, allowReplace bool) (Response, error) {
	if s.next >= len(s.Answers) {
		return Response{Action: Ignore}, nil
	}
	a := s.Answers[s.next]
	s.next++
	switch {
	case a == "":
		return Response{Action: Ignore}, nil
	case a[0] == 'q' || a[0] == 'Q':
		return Response{Action: Abort}, nil
	case allowReplace:
		return Response{Action: Replace, Value: a}, nil
	}
	return Response{Action: Ignore}, nil
}

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/agentx-labs/ailink/internal/targets"
)

const maxAttempts = 3

// Console prompts with numbered menus on a reader/writer pair.
type Console struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewConsole returns a Console reading answers from r and writing prompts to w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{reader: bufio.NewReader(r), w: w}
}

// readLine returns the next trimmed line. End of input counts as an empty
// answer so piped input falls back to defaults.
func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// SelectTargets lists the candidates, all checked, and reads which to keep.
// An empty answer keeps all, "none" keeps none, otherwise a comma-separated
// list of numbers and ranges such as "1,3-4".
func (c *Console) SelectTargets(message string, candidates []targets.Candidate) ([]string, error) {
	fmt.Fprintf(c.w, "\n%s\n", message)
	for i, cand := range candidates {
		fmt.Fprintf(c.w, "  %d) [x] %s\n", i+1, cand.Path)
	}

	for attempt := 1; ; attempt++ {
		fmt.Fprintf(c.w, "Enter numbers to keep (e.g. 1,3-4), 'none', or press enter for all: ")
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}

		idx, err := ParseSelection(line, len(candidates))
		if err == nil {
			out := make([]string, len(idx))
			for i, n := range idx {
				out[i] = candidates[n].Path
			}
			return out, nil
		}
		if attempt >= maxAttempts {
			return nil, err
		}
		fmt.Fprintf(c.w, "%v\n", err)
	}
}

// Confirm asks a yes/no question.
func (c *Console) Confirm(question string, def bool) (bool, error) {
	marker := "[y/N]"
	if def {
		marker = "[Y/n]"
	}

	for attempt := 1; ; attempt++ {
		fmt.Fprintf(c.w, "%s %s: ", question, marker)
		line, err := c.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if attempt >= maxAttempts {
			return false, fmt.Errorf("invalid answer %q: expected y or n", line)
		}
		fmt.Fprintln(c.w, "Please answer y or n.")
	}
}

// ParseSelection turns a selection answer into zero-based indexes in
// ascending order for a list of n items.
func ParseSelection(answer string, n int) ([]int, error) {
	answer = strings.TrimSpace(strings.ToLower(answer))
	switch answer {
	case "", "all", "a":
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	case "none", "0":
		return []int{}, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' }) {
		lo, hi, err := parseRange(part)
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi > n || lo > hi {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", part, n)
		}
		for i := lo; i <= hi; i++ {
			seen[i-1] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func parseRange(part string) (int, int, error) {
	if from, to, ok := strings.Cut(part, "-"); ok {
		lo, err1 := strconv.Atoi(strings.TrimSpace(from))
		hi, err2 := strconv.Atoi(strings.TrimSpace(to))
		if err1 != nil || err2 != nil {
			return 0, 0, fmt.Errorf("invalid range %q", part)
		}
		return lo, hi, nil
	}
	num, err := strconv.Atoi(part)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid selection %q: not a number", part)
	}
	return num, num, nil
}

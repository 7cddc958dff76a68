package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"midicat/internal/publish"
)

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(p.out)
			return false, nil
		}
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// newConfirmer picks how an existing catalog overwrite is answered: --yes
// accepts, a terminal on stdin is asked, anything else declines.
func newConfirmer(assumeYes bool, in io.Reader, out io.Writer) publish.Confirmer {
	if assumeYes {
		return publish.Always(true)
	}
	if file, ok := in.(*os.File); ok && isTerminal(file) {
		return newPromptConfirmer(in, out)
	}
	return nil
}

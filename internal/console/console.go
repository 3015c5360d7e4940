// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package console reads answers from the operator.
// On a terminal it uses huh forms and raw-mode keypresses; otherwise it reads plain lines.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("prompt cancelled")

// Question describes a single free-text prompt.
type Question struct {
	Title    string
	Secret   bool
	Optional bool
}

// Console prompts on an input/output pair.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1 unless in is a terminal
}

// New returns a console reading stdin and writing prompts to out.
func New(out io.Writer) *Console {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &Console{in: bufio.NewReader(os.Stdin), out: out, fd: fd}
}

// NewWithIO returns a non-interactive console reading lines from in.
func NewWithIO(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, fd: -1}
}

// Interactive reports whether prompts go to a terminal.
func (c *Console) Interactive() bool {
	return c.fd >= 0
}

// Ask prompts for one value. Required questions are asked until answered,
// or until input ends.
func (c *Console) Ask(q Question) (string, error) {
	if c.Interactive() {
		return c.askForm(q)
	}

	for {
		fmt.Fprintf(c.out, "%s: ", q.Title)
		line, err := c.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer != "" || q.Optional {
			return answer, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("no value given for %q", q.Title)
			}
			return "", err
		}
	}
}

func (c *Console) askForm(q Question) (string, error) {
	var value string
	input := huh.NewInput().
		Title(q.Title).
		Value(&value)
	if q.Secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	if !q.Optional {
		input = input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(q.Title))
			}
			return nil
		})
	}

	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(huh.ThemeDracula()).WithOutput(c.out).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("form error: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// Confirm prints question and waits for one answer.
// Only 'y' or 'Y' counts as yes. On a terminal a single keypress is read.
func (c *Console) Confirm(question string) (bool, error) {
	fmt.Fprint(c.out, question)

	if c.Interactive() {
		return c.confirmKey()
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return isYes(line), nil
}

func (c *Console) confirmKey() (bool, error) {
	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		return false, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	b, err := c.in.ReadByte()
	term.Restore(c.fd, oldState)
	fmt.Fprintln(c.out)

	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return isYes(string(b)), nil
}

func isYes(s string) bool {
	return strings.HasPrefix(s, "y") || strings.HasPrefix(s, "Y")
}

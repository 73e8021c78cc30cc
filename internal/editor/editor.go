// Package editor hands rendered forms to a person for editing, either through
// an interactive text editor or a pre-filled file.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNoTerminal is returned when an interactive editor is requested without a
// terminal attached.
var ErrNoTerminal = errors.New("interactive editor requires a terminal")

// Editor presents text for editing. ok is false when the person cancelled
// the edit; edited is then empty.
type Editor interface {
	Edit(ctx context.Context, text string) (edited string, ok bool, err error)
}

// DefaultProgram is used when neither configuration nor environment names an
// editor.
const DefaultProgram = "vi"

// ResolveCommand picks the editor command line: the configured value, then
// $VISUAL, then $EDITOR, then DefaultProgram.
func ResolveCommand(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return DefaultProgram
}

// Command runs an external editor on a temporary file.
type Command struct {
	// Line is the editor command line, e.g. "vim" or "code --wait". The file
	// path is appended as the last argument.
	Line string
	// TempDir holds the scratch file; empty means os.TempDir().
	TempDir string
	// Stdin, Stdout and Stderr are attached to the editor; nil means the
	// process's own.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
	// AllowNoTerminal skips the terminal check for editors that do not need
	// one.
	AllowNoTerminal bool
}

// NewCommand returns a Command for the resolved editor line.
func NewCommand(configured string) *Command {
	return &Command{Line: ResolveCommand(configured)}
}

// Edit writes text to a scratch file, waits for the editor to exit and
// returns the saved contents. An unsaved or emptied file is a cancellation.
func (c *Command) Edit(ctx context.Context, text string) (string, bool, error) {
	fields := strings.Fields(c.Line)
	if len(fields) == 0 {
		return "", false, errors.New("editor command is empty")
	}
	stdin := fileOr(c.Stdin, os.Stdin)
	if !c.AllowNoTerminal && !isTerminal(stdin) {
		return "", false, ErrNoTerminal
	}

	file, err := os.CreateTemp(c.TempDir, "archivewit-*.txt")
	if err != nil {
		return "", false, fmt.Errorf("create edit file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(text); err != nil {
		file.Close()
		return "", false, fmt.Errorf("write edit file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", false, fmt.Errorf("close edit file: %w", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		return "", false, fmt.Errorf("stat edit file: %w", err)
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = fileOr(c.Stdout, os.Stdout)
	cmd.Stderr = fileOr(c.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("run editor %s: %w", fields[0], err)
	}

	after, err := os.Stat(path)
	if err != nil {
		return "", false, fmt.Errorf("stat edit file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read edit file: %w", err)
	}
	edited := string(data)
	if strings.TrimSpace(edited) == "" {
		return "", false, nil
	}
	if edited == text && after.ModTime().Equal(before.ModTime()) {
		return "", false, nil
	}
	return edited, true, nil
}

// File is an Editor that ignores the rendered text and returns the contents
// of a form someone already filled in.
type File struct {
	Path string
}

// Edit returns the file contents. An empty file is a cancellation.
func (f File) Edit(ctx context.Context, _ string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", false, fmt.Errorf("read form file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", false, nil
	}
	return string(data), true, nil
}

// Func adapts a function to the Editor interface.
type Func func(ctx context.Context, text string) (string, bool, error)

// Edit calls f.
func (f Func) Edit(ctx context.Context, text string) (string, bool, error) {
	return f(ctx, text)
}

func fileOr(f, fallback *os.File) *os.File {
	if f != nil {
		return f
	}
	return fallback
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

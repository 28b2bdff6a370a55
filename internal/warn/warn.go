// Package warn implements the two warning severities: plain warnings and
// warnings that let the operator supply a replacement value. Each message is
// printed, appended to a lazily created warning file, and optionally put to
// an operator prompt that may abort the run.
package warn

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrAborted is returned when the operator asks to stop.
var ErrAborted = errors.New("run aborted per user response to warning")

// Action is the operator's answer to a warning.
type Action int

const (
	Ignore Action = iota
	Replace
	Abort
)

// Response carries the operator's answer; Value is set for Replace.
type Response struct {
	Action Action
	Value  string
}

// Prompter asks the operator how to proceed. allowReplace is false for plain
// warnings, where only Ignore and Abort are meaningful.
type Prompter interface {
	Prompt(message string, allowReplace bool) (Response, error)
}

// Reporter counts, prints and files warnings for one batch. The zero value
// is not usable; call New.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	path     string
	file     *os.File
	prompter Prompter
	count    int
	messages []string
}

// New returns a Reporter printing to out. The warning file at path is only
// created when the first warning arrives; an empty path disables it. A nil
// prompter means non-interactive mode.
func New(out io.Writer, path string, p Prompter) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out, path: path, prompter: p}
}

// Warn records a plain warning.
func (r *Reporter) Warn(message string) error {
	if err := r.record(message); err != nil {
		return err
	}
	if r.prompter == nil {
		return nil
	}
	resp, err := r.prompter.Prompt(message, false)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return r.resolve(resp, false)
}

// Warnf is Warn with formatting.
func (r *Reporter) Warnf(format string, args ...any) error {
	return r.Warn(fmt.Sprintf(format, args...))
}

// WarnReplace records a warning and returns the operator's replacement value,
// or "" when none was given.
func (r *Reporter) WarnReplace(message string) (string, error) {
	if err := r.record(message); err != nil {
		return "", err
	}
	if r.prompter == nil {
		return "", nil
	}
	resp, err := r.prompter.Prompt(message, true)
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	if err := r.resolve(resp, true); err != nil {
		return "", err
	}
	if resp.Action == Replace {
		return resp.Value, nil
	}
	return "", nil
}

func (r *Reporter) resolve(resp Response, allowReplace bool) error {
	switch {
	case resp.Action == Abort:
		_ = r.note("Quitting per user response to warning.")
		return ErrAborted
	case resp.Action == Replace && allowReplace:
		return r.note("Value replaced with:" + resp.Value + ", per user response to warning.")
	default:
		return r.note("Warning ignored per user response.")
	}
}

func (r *Reporter) record(message string) error {
	r.mu.Lock()
	r.count++
	r.messages = append(r.messages, message)
	r.mu.Unlock()
	fmt.Fprintln(r.out, "Warning:", message)
	return r.note(message)
}

// note appends one line to the warning file, opening it on first use.
func (r *Reporter) note(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.path == "" {
		return nil
	}
	if r.file == nil {
		if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
			return fmt.Errorf("mkdir warnings dir: %w", err)
		}
		f, err := os.Create(r.path)
		if err != nil {
			return fmt.Errorf("create warnings file: %w", err)
		}
		r.file = f
	}
	if _, err := fmt.Fprintln(r.file, line); err != nil {
		return fmt.Errorf("write warnings file: %w", err)
	}
	return nil
}

// Count returns the number of warnings recorded.
func (r *Reporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Messages returns the recorded warning messages in order.
func (r *Reporter) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Path returns the warning file path, or "" when disabled.
func (r *Reporter) Path() string { return r.path }

// Created reports whether the warning file was written.
func (r *Reporter) Created() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file != nil
}

// Close closes the warning file if it was opened.
func (r *Reporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Package provider abstracts the external data sources feeding a refresh
// pass. Each provider returns raw text (or JSON) and may fail; callers
// treat a failure as "source unavailable" and fall back to defaults.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Provider fetches one raw input document.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Fetch returns the raw text of the source. A non-nil error means
	// the source is unavailable; callers must not treat it as fatal.
	Fetch(ctx context.Context) (string, error)
}

// CommandProvider runs a shell command and captures stdout.
type CommandProvider struct {
	name    string
	argv    []string
	timeout time.Duration
}

// NewCommand creates a provider that runs argv with a per-call timeout.
func NewCommand(name string, argv []string, timeout time.Duration) *CommandProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CommandProvider{name: name, argv: argv, timeout: timeout}
}

func (p *CommandProvider) Name() string { return p.name }

// Fetch runs the command, bounded by the provider timeout. Non-zero exit
// and timeout both surface as errors.
func (p *CommandProvider) Fetch(ctx context.Context) (string, error) {
	if len(p.argv) == 0 {
		return "", fmt.Errorf("provider %s: no command configured", p.name)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("provider %s: timed out after %s", p.name, p.timeout)
		}
		return "", fmt.Errorf("provider %s: %w", p.name, err)
	}
	return stdout.String(), nil
}

// FileProvider reads a file from disk.
type FileProvider struct {
	name string
	path string
}

// NewFile creates a provider backed by a file path.
func NewFile(name, path string) *FileProvider {
	return &FileProvider{name: name, path: path}
}

func (p *FileProvider) Name() string { return p.name }

func (p *FileProvider) Fetch(ctx context.Context) (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("provider %s: %w", p.name, err)
	}
	return string(data), nil
}

// StaticProvider returns fixed text. Tests use it in place of real
// commands and files.
type StaticProvider struct {
	name string
	text string
	err  error
}

// NewStatic creates a provider returning text verbatim.
func NewStatic(name, text string) *StaticProvider {
	return &StaticProvider{name: name, text: text}
}

// NewFailing creates a provider that always fails.
func NewFailing(name string, err error) *StaticProvider {
	return &StaticProvider{name: name, err: err}
}

func (p *StaticProvider) Name() string { return p.name }

func (p *StaticProvider) Fetch(ctx context.Context) (string, error) {
	if p.err != nil {
		return "", fmt.Errorf("provider %s: %w", p.name, p.err)
	}
	return p.text, nil
}

// SplitCommand splits a configured command string into argv. Quoting is
// not supported; configured commands are simple space-separated
// invocations.
func SplitCommand(command string) []string {
	return strings.Fields(command)
}

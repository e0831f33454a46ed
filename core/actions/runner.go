// Package actions writes to the GitHub Actions runner: workflow commands on
// stdout, step outputs and the job summary.
package actions

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Runner talks to the workflow runner. Empty file paths disable the
// corresponding channel.
type Runner struct {
	Out io.Writer
	// OutputPath is the file named by GITHUB_OUTPUT.
	OutputPath string
	// SummaryPath is the file named by GITHUB_STEP_SUMMARY.
	SummaryPath string
}

// NewRunner returns a Runner printing workflow commands to stdout.
func NewRunner(outputPath, summaryPath string) *Runner {
	return &Runner{Out: os.Stdout, OutputPath: outputPath, SummaryPath: summaryPath}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Println writes a plain log line.
func (r *Runner) Println(msg string) {
	_, _ = fmt.Fprintln(r.out(), msg)
}

// Error emits an `::error::` annotation.
func (r *Runner) Error(msg string) {
	_, _ = fmt.Fprintf(r.out(), "::error::%s\n", msg)
}

// Notice emits a `::notice::` annotation. Multi-line messages are written as
// is, the runner shows the first line as the annotation title.
func (r *Runner) Notice(msg string) {
	_, _ = fmt.Fprintf(r.out(), "::notice::%s\n", msg)
}

// Group wraps the output of fn in a collapsible `::group::` block. The group is
// closed even when fn fails.
func (r *Runner) Group(name string, fn func() error) error {
	_, _ = fmt.Fprintf(r.out(), "::group::%s\n", name)
	defer func() { _, _ = fmt.Fprintln(r.out(), "::endgroup::") }()
	return fn()
}

// CollapsedLog prints value inside a group. Strings are printed verbatim,
// anything else as indented JSON.
func (r *Runner) CollapsedLog(name string, value any) {
	_ = r.Group(name, func() error {
		if s, ok := value.(string); ok {
			r.Println(s)
			return nil
		}
		b, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			r.Println(fmt.Sprintf("%+v", value))
			return nil
		}
		r.Println(string(b))
		return nil
	})
}

// SetOutput appends a step output using the multi-line delimiter syntax. When
// no output file is configured the value is printed as a notice instead.
func (r *Runner) SetOutput(name string, value any) error {
	v := fmt.Sprint(value)
	if r.OutputPath == "" {
		slog.Warn("GITHUB_OUTPUT is not set, printing output instead", "name", name)
		r.Notice(fmt.Sprintf("%s=%s", name, v))
		return nil
	}

	delimiter, err := newDelimiter(v)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(r.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "\n%s<<%s\n%s\n%s\n", name, delimiter, v, delimiter); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	slog.Debug("Set step output", "name", name)
	return nil
}

// WriteSummary replaces the job summary with content.
func (r *Runner) WriteSummary(content []byte) error {
	if r.SummaryPath == "" {
		slog.Debug("GITHUB_STEP_SUMMARY is not set, skipping job summary")
		return nil
	}
	if err := os.WriteFile(r.SummaryPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write step summary: %w", err)
	}
	return nil
}

// newDelimiter returns a random heredoc delimiter that does not occur in value.
func newDelimiter(value string) (string, error) {
	for {
		b := make([]byte, 8)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("failed to generate output delimiter: %w", err)
		}
		d := "ghadelimiter_" + hex.EncodeToString(b)
		if !strings.Contains(value, d) {
			return d, nil
		}
	}
}

// Package delta wraps an external xdelta3-compatible binary delta tool:
// ready probing, patch creation and application. It is a direct translation
// of original_source/src/xdelta3.rs (igapanovich/biver-rs), generalised to
// accept a configurable command line the way env.rs's XDelta3Env did.
package delta

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"
)

// Tool invokes an xdelta3-compatible external tool. The zero value uses the
// "xdelta3" binary from $PATH with no extra flags.
type Tool struct {
	// Command is the configured invocation, e.g. "xdelta3" or
	// "xdelta3 -q" (SPEC_FULL.md §4.3). Empty defaults to "xdelta3".
	Command string
	Logger  *logrus.Logger
}

func (t Tool) command() string {
	if t.Command == "" {
		return "xdelta3"
	}
	return t.Command
}

func (t Tool) logger() *logrus.Logger {
	if t.Logger == nil {
		return logrus.StandardLogger()
	}
	return t.Logger
}

func (t Tool) argv(args ...string) ([]string, error) {
	parts, err := shlex.Split(t.command())
	if err != nil {
		return nil, fmt.Errorf("delta: parsing configured command %q: %w", t.command(), err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("delta: configured command is empty")
	}
	return append(parts, args...), nil
}

// Ready reports whether the external tool is present and runnable. Per
// spec.md §4.3/§7, tool absence is capability absence, not an error: Ready
// returning false simply disables patch-chain storage.
func (t Tool) Ready() bool {
	argv, err := t.argv("-V")
	if err != nil {
		return false
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	err = cmd.Run()
	if err != nil {
		t.logger().WithError(err).Debug("delta: tool not ready")
		return false
	}
	return cmd.ProcessState.ExitCode() == 0
}

// CreatePatch invokes the tool to encode a compressed delta from base to
// new, written to outPatch.
func (t Tool) CreatePatch(base, new_, outPatch string) error {
	argv, err := t.argv("-e", "-f", "-s", base, new_, outPatch)
	if err != nil {
		return err
	}
	if err := run(argv); err != nil {
		return fmt.Errorf("delta: creating patch %s -> %s: %w", base, new_, err)
	}
	return nil
}

// ApplyPatch invokes the tool to decode patch on top of base, writing the
// result to outNew. Any pre-existing outNew is removed first: the tool
// refuses to overwrite an existing output file.
func (t Tool) ApplyPatch(base, patch, outNew string) error {
	if err := os.Remove(outNew); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delta: removing stale output %s: %w", outNew, err)
	}

	argv, err := t.argv("-d", "-f", "-s", base, patch, outNew)
	if err != nil {
		return err
	}
	if err := run(argv); err != nil {
		return fmt.Errorf("delta: applying patch %s to %s: %w", patch, base, err)
	}
	return nil
}

func run(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %v: %w", argv, err)
	}
	return nil
}

package entry

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"github.com/matsen/quote/internal/config"
)

// ErrEditorFailed is returned when the editor exits with a non-zero status.
var ErrEditorFailed = errors.New("editor exited with an error")

// Editor runs the user's editor against a file and waits for it to exit.
type Editor struct {
	// Command is a shell-style command line, e.g. "code --wait".
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// Edit blocks until the editor exits. The file path is appended as the last argument.
func (e *Editor) Edit(ctx context.Context, path string) error {
	if strings.TrimSpace(e.Command) == "" {
		return config.ErrNoEditor
	}

	argv, err := shellquote.Split(e.Command)
	if err != nil {
		return errors.Wrapf(err, "parsing editor command %q", e.Command)
	}
	if len(argv) == 0 {
		return config.ErrNoEditor
	}

	args := append(argv[1:], path)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Stdin = orDefault(e.Stdin, os.Stdin)
	cmd.Stdout = orDefaultWriter(e.Stdout, os.Stdout)
	cmd.Stderr = orDefaultWriter(e.Stderr, os.Stderr)

	if e.Logger != nil {
		e.Logger.Debug("launching editor", "cmd", argv[0], "args", args)
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(errors.Mark(err, ErrEditorFailed), "running %s", argv[0])
	}
	return nil
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

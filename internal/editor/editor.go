package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner launches an editor on a file. Commands take it as a dependency so tests
// can record invocations instead of spawning processes.
type Runner interface {
	Edit(path string) error
}

// Command runs an editor command line with the terminal attached.
type Command struct {
	// Editor is the command line, e.g. "vi" or "code --wait". Empty means
	// $EDITOR, then nano, then vi.
	Editor string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Command bound to the process's standard streams.
func New(editor string) *Command {
	return &Command{
		Editor: editor,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Edit launches the editor and waits for it to exit.
func (c *Command) Edit(path string) error {
	name, args, err := c.resolve()
	if err != nil {
		return err
	}

	cmd := exec.Command(name, append(args, path)...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to execute editor '%s': %w", c.Editor, err)
	}
	return nil
}

func (c *Command) resolve() (string, []string, error) {
	editor := strings.TrimSpace(c.Editor)
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		if _, err := exec.LookPath("nano"); err == nil {
			editor = "nano"
		} else if _, err := exec.LookPath("vi"); err == nil {
			editor = "vi"
		} else {
			return "", nil, fmt.Errorf("no editor found: %w", err)
		}
	}

	fields := strings.Fields(editor)
	return fields[0], fields[1:], nil
}

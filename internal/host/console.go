package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"whispersend/internal/feedback"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// Console prints notifications to a terminal. Dismissals are silent.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
}

// NewConsole writes to out, colouring lines when out is a terminal.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, colorize: shouldColorize(out)}
}

// Create prints one line for n.
func (c *Console) Create(_ context.Context, _ string, n feedback.Notification) error {
	label := feedback.BadgeTextFailure
	color := ansiRed
	if n.Success {
		label = feedback.BadgeTextSuccess
		color = ansiGreen
	}
	line := fmt.Sprintf("%s [%s] %s", n.Title, label, n.Message)
	if c.colorize {
		line = color + line + ansiReset
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, line)
	return err
}

// Clear is a no-op; printed lines stay printed.
func (c *Console) Clear(context.Context, string) error {
	return nil
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

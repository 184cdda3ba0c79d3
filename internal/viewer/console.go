package viewer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Console drives a Controller from line commands: "f", "fetch" or an
// empty line refreshes and redraws, "q" or "quit" exits.
type Console struct {
	ctrl  *Controller
	title string
}

// NewConsole returns a console titled title.
func NewConsole(ctrl *Controller, title string) *Console {
	return &Console{ctrl: ctrl, title: title}
}

const help = "commands: [f]etch, [q]uit"

// Run reads commands from in until quit, EOF or ctx is done.  Fetch
// failures are shown, never returned; only I/O errors end the loop early.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "%s\n%s\n", c.title, help)
	if err := Render(out, c.ctrl.Snapshot()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- sc.Err()
	}()

	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case line = <-lines:
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "f", "fetch":
			_ = c.ctrl.Refresh(ctx)
			if err := Render(out, c.ctrl.Snapshot()); err != nil {
				return err
			}
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintln(out, help)
		}
	}
}

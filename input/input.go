// Package input turns text lines from a keypad, encoder or terminal into menu
// navigation.
package input

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dasdy/monoframe/logging"
)

type Command int

const (
	CommandNone Command = iota
	CommandNext
	CommandPrev
	CommandSelect
)

func (c Command) String() string {
	switch c {
	case CommandNext:
		return "next"
	case CommandPrev:
		return "prev"
	case CommandSelect:
		return "select"
	default:
		return "none"
	}
}

// Handler is what a command is applied to, typically a menu.
type Handler interface {
	Next() error
	Prev() error
	Select() string
}

var aliases = map[string]Command{
	"next":   CommandNext,
	"n":      CommandNext,
	"down":   CommandNext,
	"cw":     CommandNext,
	"prev":   CommandPrev,
	"p":      CommandPrev,
	"up":     CommandPrev,
	"ccw":    CommandPrev,
	"select": CommandSelect,
	"s":      CommandSelect,
	"enter":  CommandSelect,
	"press":  CommandSelect,
}

// ParseLine parses one line. Blank lines give CommandNone without error.
func ParseLine(line string) (Command, error) {
	// Trim the reset escape code some firmwares append to their output.
	token := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "\x1b[0m")))
	if token == "" {
		return CommandNone, nil
	}

	cmd, ok := aliases[token]
	if !ok {
		return CommandNone, fmt.Errorf("unknown command: '%s'", token)
	}

	return cmd, nil
}

// Apply runs cmd on h. For CommandSelect the selected text is returned.
func Apply(cmd Command, h Handler) (string, error) {
	switch cmd {
	case CommandNext:
		return "", h.Next()
	case CommandPrev:
		return "", h.Prev()
	case CommandSelect:
		return h.Select(), nil
	default:
		return "", nil
	}
}

// Loop applies every line read from ch to h until ch is closed. Unparsable
// lines and failed commands are logged and skipped. onSelect, when not nil,
// receives the text of every selection.
func Loop(ch <-chan string, h Handler, onSelect func(string)) {
	ctx := logging.PackageCtx("input")

	for line := range ch {
		cmd, err := ParseLine(line)
		if err != nil {
			slog.WarnContext(ctx, "Skipping line", "line", line, "error", err)

			continue
		}

		selected, err := Apply(cmd, h)
		if err != nil {
			slog.ErrorContext(ctx, "Command failed", "command", cmd, "error", err)

			continue
		}

		slog.DebugContext(ctx, "Applied command", "command", cmd)

		if cmd == CommandSelect && onSelect != nil {
			onSelect(selected)
		}
	}

	slog.InfoContext(ctx, "Input closed")
}

package db

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// Merge copies every session of inputs into output. A session already present
// in output is skipped.
func Merge(inputs []Storage, output Storage) error {
	existing, err := output.Sessions()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}

	bar := progressbar.Default(-1, "Merging frames...")

	for i, input := range inputs {
		sessions, err := input.Sessions()
		if err != nil {
			return fmt.Errorf("could not list sessions of input %d: %w", i, err)
		}

		for _, session := range sessions {
			if seen[session] {
				slog.Warn("Session already merged, skipping", "session", session, "input", i)

				continue
			}

			seen[session] = true

			frames, err := input.AllIterator(session)
			if err != nil {
				return err
			}

			for f := range frames {
				if err := output.Store(&f); err != nil {
					return err
				}

				if err := bar.Add(1); err != nil {
					slog.Error("could not update progress bar", "error", err)
				}
			}
		}
	}

	if err := bar.Finish(); err != nil {
		slog.Error("could not finish progress bar", "error", err)
	}

	return nil
}

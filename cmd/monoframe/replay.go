package monoframe

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/monoframe/db"
	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	session string
	speed   float64
)

// replayFrames writes frames to d, keeping their original spacing divided by
// speed. speed <= 0 replays without pauses.
func replayFrames(storage db.Storage, session string, d display.Driver, speed float64, onFrame func(model.Frame)) error {
	frames, err := storage.AllIterator(session)
	if err != nil {
		return err
	}

	var last time.Time

	for f := range frames {
		if speed > 0 && !last.IsZero() {
			time.Sleep(time.Duration(float64(f.Timestamp.Sub(last)) / speed))
		}

		last = f.Timestamp

		if f.Mode != d.Mode() {
			return fmt.Errorf("frame %d is packed as %s, display expects %s: %w",
				f.Seq, f.Mode, d.Mode(), model.ErrInvalidDimension)
		}

		if err := d.WriteBlock(f.Data, f.Row, f.Col, f.Cols); err != nil {
			return fmt.Errorf("could not replay frame %d: %w", f.Seq, err)
		}

		if onFrame != nil {
			onFrame(f)
		}
	}

	return nil
}

func latestSession(storage db.Storage) (string, error) {
	sessions, err := storage.Sessions()
	if err != nil {
		return "", err
	}

	if len(sessions) == 0 {
		return "", fmt.Errorf("no recorded sessions: %w", model.ErrNotFound)
	}

	return sessions[len(sessions)-1], nil
}

// replayCmd represents the replay command.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded session on a display",
	Long:  `Send the frames of a recorded session to a display again, with their original timing.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		storage, err := db.ConnectDB(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		if session == "" {
			session, err = latestSession(storage)
			if err != nil {
				return err
			}
		}

		count, err := storage.Count(session)
		if err != nil {
			return err
		}

		out, err := openOutput()
		if err != nil {
			return err
		}
		defer out.Close()

		slog.Info("Replaying session", "session", session, "frames", count)

		bar := progressbar.Default(int64(count), "Replaying...")

		err = replayFrames(storage, session, out.driver, speed, func(model.Frame) {
			if err := bar.Add(1); err != nil {
				slog.Error("could not update progress bar", "error", err)
			}
		})
		if err != nil {
			return err
		}

		if err := bar.Finish(); err != nil {
			slog.Error("could not finish progress bar", "error", err)
		}

		if out.terminal != nil {
			return printTerminal(out.terminal)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	addDisplayFlags(replayCmd)
	addStorageFlag(replayCmd, "Database with recorded frames")

	replayCmd.Flags().StringVar(&session, "session", "", "Session to replay. Empty replays the latest one")
	replayCmd.Flags().Float64Var(&speed, "speed", 1, "Playback speed factor. 0 replays without pauses")
}

package monoframe

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/panel"
	"github.com/dasdy/monoframe/text"
	"github.com/dasdy/monoframe/widget"
	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"
)

var (
	title        string
	iconManifest string
	duration     time.Duration
	frameRate    int
)

// dashboard is a title row above a progress bar and a row of icons.
type dashboard struct {
	root     *panel.Panel
	header   *panel.Panel
	bar      *panel.Panel
	icons    *panel.Panel
	progress *widget.ProgressWidget
	options  *widget.IconOptionWidget
}

func newDashboard(d display.Driver, r text.Rasterizer) (*dashboard, error) {
	root, err := panel.NewForDriver(d)
	if err != nil {
		return nil, err
	}

	headerHeight := min(16, d.Height()/2/8*8)
	if headerHeight == 0 {
		return nil, fmt.Errorf("display of %d rows is too small: %w", d.Height(), model.ErrInvalidDimension)
	}

	rows, err := root.VerticalPanels(headerHeight)
	if err != nil {
		return nil, err
	}

	columns, err := rows[1].HorizontalPanels(d.Width() / 2)
	if err != nil {
		return nil, err
	}

	header := widget.NewTextWidget(d.Width(), headerHeight, r)
	header.SetText(title)
	header.SetFont(model.Font{File: fontFile, Size: fontSize})
	rows[0].SetContent(header)

	progress, err := widget.NewProgressWidget(columns[0].Width(), columns[0].Height())
	if err != nil {
		return nil, err
	}

	columns[0].SetContent(progress)

	options, err := widget.NewIconOptionWidget(columns[1].Width(), columns[1].Height())
	if err != nil {
		return nil, err
	}

	if iconManifest != "" {
		if err := options.LoadManifest(iconManifest); err != nil {
			return nil, err
		}

		if _, err := options.SelectFirst(); err != nil && !errors.Is(err, model.ErrOutOfRange) {
			return nil, err
		}
	}

	columns[1].SetContent(options)

	return &dashboard{
		root:     root,
		header:   rows[0],
		bar:      columns[0],
		icons:    columns[1],
		progress: progress,
		options:  options,
	}, nil
}

// animate fills the progress bar, moving the icon selection along.
func (dash *dashboard) animate(d display.Driver) error {
	if frameRate <= 0 {
		return fmt.Errorf("fps %d: %w", frameRate, model.ErrOutOfRange)
	}

	tween, err := dash.progress.Animate(1, float32(duration.Seconds()), ease.OutQuad)
	if err != nil {
		return err
	}

	step := time.Second / time.Duration(frameRate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	iconCount := len(dash.options.Icons())
	lastIcon := 0

	for !tween.Done {
		<-ticker.C

		if err := tween.Update(float32(step.Seconds())); err != nil {
			return err
		}

		if err := dash.bar.Render(d, false); err != nil {
			return err
		}

		if iconCount == 0 {
			continue
		}

		current := min(int(dash.progress.Percent()*float64(iconCount)), iconCount-1)
		if current != lastIcon {
			lastIcon = current

			if _, err := dash.options.SelectNext(); err != nil && !errors.Is(err, model.ErrOutOfRange) {
				return err
			}

			if err := dash.icons.Render(d, false); err != nil {
				return err
			}
		}
	}

	slog.Info("Animation finished", "percent", dash.progress.Percent())

	return nil
}

func printTerminal(term *display.Terminal) error {
	b, err := term.Bitmap()
	if err != nil {
		return err
	}

	fmt.Println(display.RenderHalfBlocks(b))

	return nil
}

// panelCmd represents the panel command.
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Show a dashboard built from panels",
	Long: `Split the display into a title row, a progress bar and a row of icons, then
animate the progress bar from empty to full.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		out, err := openOutput()
		if err != nil {
			return err
		}
		defer out.Close()

		dash, err := newDashboard(out.driver, text.NewRenderer())
		if err != nil {
			return err
		}

		if err := dash.root.Render(out.driver, true); err != nil {
			return err
		}

		if err := dash.animate(out.driver); err != nil {
			return err
		}

		if out.terminal != nil {
			return printTerminal(out.terminal)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
	addDisplayFlags(panelCmd)
	addStorageFlag(panelCmd, "Where recorded frames are written")

	panelCmd.Flags().StringVar(&title, "title", "monoframe", "Text of the title row")
	panelCmd.Flags().StringVar(&iconManifest, "icons", "", "YAML icon manifest shown next to the progress bar")
	panelCmd.Flags().StringVar(&fontFile, "font-file", "", "TrueType/OpenType font. Empty uses the built-in font")
	panelCmd.Flags().Float64Var(&fontSize, "font-size", text.DefaultSize, "Font size in pixels")
	panelCmd.Flags().DurationVar(&duration, "duration", 3*time.Second, "How long the progress animation runs")
	panelCmd.Flags().IntVar(&frameRate, "fps", 20, "Frames per second of the animation")
	panelCmd.Flags().BoolVarP(&record, "record", "r", false, "Record everything written to the display")
}

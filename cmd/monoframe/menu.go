package monoframe

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/input"
	"github.com/dasdy/monoframe/menu"
	"github.com/dasdy/monoframe/ports"
	"github.com/dasdy/monoframe/text"
	"github.com/spf13/cobra"
)

var (
	fontFile   string
	fontSize   float64
	itemHeight int
	indent     int
)

// menuCmd represents the menu command.
var menuCmd = &cobra.Command{
	Use:   "menu [item...]",
	Short: "Show a scrollable menu",
	Long: `Show the given items as a scrollable menu.
On a device, navigation lines (next, prev, select) are read from stdin and
from the bridge. In the terminal use the arrow keys and enter.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		out, err := openOutput()
		if err != nil {
			return err
		}
		defer out.Close()

		style := menu.DefaultStyle()
		style.FontFile = fontFile
		style.FontSize = fontSize
		style.ItemHeight = itemHeight
		style.Indent = indent

		m, err := menu.NewTextListMenu(out.driver, text.NewRenderer(), args, style)
		if err != nil {
			return err
		}

		if err := out.driver.Clear(); err != nil {
			return err
		}

		if err := m.Draw(); err != nil {
			return err
		}

		if out.terminal != nil {
			return runTerminalMenu(out.terminal, m)
		}

		slog.Info("Waiting for input", "items", m.Len())

		lines := ports.ReadFile(os.Stdin)
		if out.bridge != nil {
			lines = ports.ReadTwoFiles(os.Stdin, out.bridge)
		}

		input.Loop(lines, m, func(selected string) {
			fmt.Println(selected)
		})

		return nil
	},
}

func runTerminalMenu(term *display.Terminal, m *menu.TextListMenu) error {
	result, err := tea.NewProgram(display.NewTerminalModel(term, m)).Run()
	if err != nil {
		return fmt.Errorf("terminal display failed: %w", err)
	}

	model, ok := result.(display.TerminalModel)
	if !ok {
		return errors.New("unexpected terminal model")
	}

	if model.Err() != nil {
		return model.Err()
	}

	if model.Selected() != "" {
		fmt.Println(model.Selected())
	}

	return nil
}

func init() {
	rootCmd.AddCommand(menuCmd)
	addDisplayFlags(menuCmd)
	addStorageFlag(menuCmd, "Where recorded frames are written")

	defaults := menu.DefaultStyle()

	menuCmd.Flags().StringVar(&fontFile, "font-file", defaults.FontFile,
		"TrueType/OpenType font. Empty uses the built-in font")
	menuCmd.Flags().Float64Var(&fontSize, "font-size", defaults.FontSize, "Font size in pixels")
	menuCmd.Flags().IntVar(&itemHeight, "item-height", defaults.ItemHeight, "Height of one menu item")
	menuCmd.Flags().IntVar(&indent, "indent", defaults.Indent, "Left margin of item text")
	menuCmd.Flags().BoolVarP(&record, "record", "r", false, "Record everything written to the display")
}

package monoframe

import (
	"fmt"
	"time"

	"github.com/dasdy/monoframe/ports"
	"github.com/spf13/cobra"
)

var wait time.Duration

// portsCmd represents the ports command.
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List connected display bridges",
	RunE: func(_ *cobra.Command, _ []string) error {
		if wait > 0 {
			device, err := ports.WaitForDevice(wait, 500*time.Millisecond)
			if err != nil {
				return err
			}

			fmt.Println(device)

			return nil
		}

		names, err := ports.GetAvailableDevices()
		if err != nil {
			return err
		}

		for _, n := range names {
			fmt.Println(n)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)

	portsCmd.Flags().DurationVarP(&wait, "wait", "w", 0, "Wait up to this long for a bridge to be connected")
}
